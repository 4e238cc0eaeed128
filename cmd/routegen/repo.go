// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"routegen-cli/internal/config"
	"routegen-cli/internal/repo"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	repoGlobs  []string
	repoNoStub bool

	// repoCmd generates route maps for every routable package in a
	// workspace.
	repoCmd = &cobra.Command{
		Use:   "repo [workspace-dir]",
		Short: "Generate route-map modules for every package in a workspace",
		Long: `Resolve the workspace package globs (from --glob, routegen.yaml, or
pnpm-workspace.yaml), detect routable packages, and run one generation
pass per package. Empty command files are populated with starter content
unless --no-stub is given.

A package is routable when it carries a routegen.config.json whose
commands directory exists, or when its default commands directory
contains a __root.ts file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRepo,
	}
)

func init() {
	repoCmd.Flags().StringSliceVar(&repoGlobs, "glob", nil, "workspace package globs (repeatable)")
	repoCmd.Flags().BoolVar(&repoNoStub, "no-stub", false, "do not populate empty command files")
}

func runRepo(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg := config.Load()
	globs := repoGlobs
	if len(globs) == 0 {
		globs = cfg.Globs
	}

	scanner := repo.New(afero.NewOsFs(), nil, logger)

	failed := 0
	results, err := scanner.GenerateAll(root, repo.GenerateAllOptions{
		Globs: globs,
		Stub:  cfg.AutoStub && !repoNoStub,
		OnPackage: func(pkg repo.Package) {
			fmt.Printf("%s %s\n", SubtitleStyle.Render("→"), PathStyle.Render(pkg.Name))
		},
		OnStub: func(path string) {
			fmt.Printf("  %s stubbed %s\n", WarningStyle.Render("+"), PathStyle.Render(path))
		},
		OnError: func(pkg repo.Package, pkgErr error) {
			failed++
			fmt.Printf("  %s %s: %v\n", ErrorStyle.Render("✗"), pkg.Name, pkgErr)
		},
	})
	if err != nil {
		return err
	}

	if len(results) == 0 && failed == 0 {
		fmt.Printf("%s No routable packages found under %s\n",
			WarningStyle.Render("!"), PathStyle.Render(root))
		return nil
	}

	total := 0
	for _, res := range results {
		total += len(res.OutputFiles)
	}
	fmt.Printf("%s Generated %d file(s) across %d package(s)\n",
		SuccessStyle.Render("✓"), total, len(results))

	if failed > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d package(s) failed to generate", failed)}
	}
	return nil
}
