package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/guardhq/guard/discovery"
	"github.com/guardhq/guard/pkgsystem"
	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/values"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed guard plugins",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cmd)
		},
	}
}

func runList(ctx context.Context, cmd *cobra.Command) error {
	sys := pkgsystem.New(pkgsystem.DefaultRoots())

	names, err := discovery.PluginNames(ctx, sys)
	if err != nil {
		return fmt.Errorf("failed to discover plugins: %w", err)
	}

	if len(names) == 0 {
		cmd.Println(dimStyle.Render("no guard plugins installed"))
		return nil
	}

	cmd.Println(headerStyle.Render("Installed plugins"))
	for _, name := range names {
		ref := values.NewPluginReference(name)
		version := lookupVersion(ctx, sys, ref)
		cmd.Printf("  %s %s\n", nameStyle.Render(name), dimStyle.Render(version))
	}
	return nil
}

// lookupVersion resolves the installed version behind a plugin name,
// trying the conventional package name first and the bare name for
// packages embedding a unit.
func lookupVersion(ctx context.Context, sys *pkgsystem.FSPackageSystem, ref values.PluginReference) string {
	spec, err := sys.Find(ctx, ref.PackageName())
	if errors.Is(err, entities.ErrPackageNotFound) {
		spec, err = sys.Find(ctx, ref.Name())
	}
	if err != nil || spec.Version == "" {
		return ""
	}
	return spec.Version
}
