package ports

// Reporter is the user-visible diagnostics sink. Implementations
// must never fail; reporting is best effort.
type Reporter interface {
	// Info reports an informational message.
	Info(message string)

	// Error reports a user-visible error line.
	Error(message string)
}
