package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guardhq/guard/discovery"
	"github.com/guardhq/guard/guardfile"
	"github.com/guardhq/guard/pkgsystem"
	"github.com/guardhq/guard/plugin"
	"github.com/guardhq/guard/plugin/values"
)

func newInitCommand() *cobra.Command {
	var guardfilePath string

	cmd := &cobra.Command{
		Use:   "init [plugin...]",
		Short: "Add plugin template snippets to the Guardfile",
		Long: `Appends each plugin's Guardfile template to the Guardfile, skipping
plugins the Guardfile already declares. With no arguments an
interactive picker offers all installed plugins.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), cmd, guardfilePath, args)
		},
	}

	cmd.Flags().StringVar(&guardfilePath, "guardfile", "Guardfile", "path to the Guardfile")
	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, guardfilePath string, names []string) error {
	sys := pkgsystem.New(pkgsystem.DefaultRoots())

	if len(names) == 0 {
		picked, err := pickPlugins(ctx, sys)
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			cmd.Println(dimStyle.Render("nothing to add"))
			return nil
		}
		names = picked
	}

	integrator := guardfile.NewIntegrator(guardfilePath, sys,
		guardfile.NewTextEvaluator(guardfilePath),
		guardfile.WithReporter(plugin.NewConsoleReporter(cmd.OutOrStdout(), os.Stderr)))

	for _, name := range names {
		if err := integrator.Add(ctx, values.NewPluginReference(name)); err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
	}
	return nil
}

func pickPlugins(ctx context.Context, sys *pkgsystem.FSPackageSystem) ([]string, error) {
	available, err := discovery.PluginNames(ctx, sys)
	if err != nil {
		return nil, fmt.Errorf("failed to discover plugins: %w", err)
	}
	if len(available) == 0 {
		return nil, nil
	}

	prompter := guardfile.NewSetupPrompter()
	if !prompter.IsInteractive() {
		return available, nil
	}
	return prompter.PickPlugins(available)
}
