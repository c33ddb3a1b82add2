package ports

// Evaluator is the external Guardfile evaluator. This core only
// needs to know whether a plugin is already declared; evaluation
// itself belongs to the surrounding system.
type Evaluator interface {
	// Includes reports whether the configuration document already
	// declares the plugin with the given short name.
	Includes(name string) bool
}
