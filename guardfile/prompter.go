package guardfile

import (
	"os"

	"github.com/charmbracelet/huh"
)

// SetupPrompter provides interactive plugin selection for guard init
// when no plugin name is given.
type SetupPrompter struct{}

// NewSetupPrompter creates a new SetupPrompter.
func NewSetupPrompter() *SetupPrompter {
	return &SetupPrompter{}
}

// IsInteractive checks if we're running in an interactive terminal.
func (p *SetupPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// PickPlugins asks the user which of the installed plugins to add.
func (p *SetupPrompter) PickPlugins(available []string) ([]string, error) {
	var selected []string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which plugins should be added to your Guardfile?").
				Options(huh.NewOptions(available...)...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}
