package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardhq/guard/discovery"
	"github.com/guardhq/guard/pkgsystem"
	"github.com/guardhq/guard/plugin"
	"github.com/guardhq/guard/plugin/filesystem"
)

func newLockCommand() *cobra.Command {
	var (
		lockfilePath string
		check        bool
	)

	cmd := &cobra.Command{
		Use:   "lock [plugin...]",
		Short: "Pin installed plugin versions into the lockfile",
		Long: `Records each plugin's resolved version and manifest digest in the
lockfile. With no arguments all installed plugins are pinned.
--check compares the lockfile against the installed packages instead
of writing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLock(cmd.Context(), cmd, lockfilePath, args, check)
		},
	}

	cmd.Flags().StringVar(&lockfilePath, "lockfile", "Guardfile.lock", "path to the lockfile")
	cmd.Flags().BoolVar(&check, "check", false, "report drift instead of writing")
	return cmd
}

func runLock(ctx context.Context, cmd *cobra.Command, lockfilePath string, names []string, check bool) error {
	sys := pkgsystem.New(pkgsystem.DefaultRoots())
	service := plugin.NewLockfileService(filesystem.NewFileLockfileRepository(), sys)

	if check {
		drifted, err := service.Drift(ctx, lockfilePath)
		if err != nil {
			return fmt.Errorf("failed to check lockfile: %w", err)
		}
		if len(drifted) == 0 {
			cmd.Println(nameStyle.Render("lockfile is up to date"))
			return nil
		}
		for _, name := range drifted {
			cmd.Printf("  %s %s\n", name, dimStyle.Render("drifted"))
		}
		return fmt.Errorf("%d plugin(s) drifted from the lockfile", len(drifted))
	}

	if len(names) == 0 {
		var err error
		names, err = discovery.PluginNames(ctx, sys)
		if err != nil {
			return fmt.Errorf("failed to discover plugins: %w", err)
		}
	}
	if len(names) == 0 {
		cmd.Println(dimStyle.Render("no plugins to pin"))
		return nil
	}

	lockfile, err := service.Pin(ctx, names, lockfilePath)
	if err != nil {
		return fmt.Errorf("failed to pin plugins: %w", err)
	}

	cmd.Printf("pinned %d plugin(s) to %s\n", lockfile.PluginCount(), lockfilePath)
	return nil
}
