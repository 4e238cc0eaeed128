// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"time"

	"routegen-cli/internal/config"
	"routegen-cli/internal/repo"
	"routegen-cli/internal/watch"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	watchDebounce time.Duration
	watchNoStub   bool

	// watchCmd keeps generated output synchronized while command files are
	// edited.
	watchCmd = &cobra.Command{
		Use:   "watch [package-dir]",
		Short: "Regenerate route-map modules whenever command files change",
		Long: `Generate once, then watch the commands directory and regenerate after
every burst of changes. Newly created empty command files are populated
with starter content unless --no-stub is given.

Press Ctrl+C to stop.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before regenerating (default from config)")
	watchCmd.Flags().BoolVar(&watchNoStub, "no-stub", false, "do not populate newly created empty files")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg := config.Load()
	debounce := cfg.Debounce
	if watchDebounce > 0 {
		debounce = watchDebounce
	}
	autoStub := cfg.AutoStub && !watchNoStub

	scanner := repo.New(afero.NewOsFs(), nil, logger)
	pkg := scanner.PackageAt(dir)

	watchCfg := watch.Config{
		CommandsDir: pkg.CommandsDir,
		Debounce:    debounce,
		Logger:      logger,
		OnChange: func(changed []string) error {
			res, err := scanner.GeneratePackage(pkg)
			if err != nil {
				return err
			}
			if changed == nil {
				fmt.Printf("%s Initial generation: %d command file(s)\n",
					SuccessStyle.Render("✓"), len(res.CommandFiles))
				return nil
			}
			fmt.Printf("%s Regenerated after %d change(s)\n", SuccessStyle.Render("✓"), len(changed))
			return nil
		},
	}
	if autoStub {
		watchCfg.OnCreate = func(path string) error {
			return scanner.PopulateStubFile(path, pkg.CommandsDir)
		}
	}

	w, err := watch.New(watchCfg)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Printf("\n%s Watching %s (Ctrl+C to stop)...\n",
		SubtitleStyle.Render("→"), PathStyle.Render(pkg.CommandsDir))

	<-cmd.Context().Done()
	fmt.Printf("\n%s Stopping watch session\n", SubtitleStyle.Render("→"))
	return nil
}
