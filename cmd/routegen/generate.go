// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"routegen-cli/internal/repo"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	generateCheck bool

	// generateCmd runs one scan-and-generate pass for a single package.
	generateCmd = &cobra.Command{
		Use:   "generate [package-dir]",
		Short: "Scan the commands directory and generate route-map modules once",
		Long: `Scan the package's commands directory and write the generated
route-map modules. With a root configuration present, the typed context
helper and application bootstrap modules are generated as well.

Generation is deterministic: rerunning on an unchanged tree rewrites
identical bytes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}
)

func init() {
	generateCmd.Flags().BoolVar(&generateCheck, "check", false, "fail instead of writing when generated output is stale")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	scanner := repo.New(afero.NewOsFs(), nil, logger)
	pkg := scanner.PackageAt(dir)

	if generateCheck {
		stale, err := scanner.CheckPackage(pkg)
		if err != nil {
			return err
		}
		if len(stale) > 0 {
			for _, f := range stale {
				fmt.Printf("%s stale: %s\n", WarningStyle.Render("!"), PathStyle.Render(f))
			}
			return &ExitError{Code: 1, Err: fmt.Errorf("%d generated file(s) out of date; run 'routegen generate'", len(stale))}
		}
		fmt.Printf("%s Generated output is up to date\n", SuccessStyle.Render("✓"))
		return nil
	}

	res, err := scanner.GeneratePackage(pkg)
	if err != nil {
		return err
	}

	fmt.Printf("%s Discovered %d command file(s) under %s\n",
		SuccessStyle.Render("✓"), len(res.CommandFiles), PathStyle.Render(pkg.CommandsDir))
	for _, f := range res.OutputFiles {
		fmt.Printf("  wrote %s\n", PathStyle.Render(f))
	}
	return nil
}
