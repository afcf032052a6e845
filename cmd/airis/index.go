package main

import (
	"fmt"

	"github.com/agiletec/airis/internal/repoindex"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func indexCmd() *cobra.Command {
	var (
		mode       string
		maxEntries int
		noDocs     bool
		noTests    bool
		outputDir  string
		render     bool
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "index <repo-path>",
		Short: "Generate a PROJECT_INDEX for a repository",
		Long:  "Walk the repository and produce PROJECT_INDEX.md and PROJECT_INDEX.json with structure, entry points, docs, tests, and configuration files.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := repoindex.Generate(repoindex.Request{
				RepoPath:     args[0],
				Mode:         repoindex.Mode(mode),
				IncludeDocs:  !noDocs,
				IncludeTests: !noTests,
				MaxEntries:   maxEntries,
				OutputDir:    outputDir,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(resp.Index)
			}

			out := resp.Markdown
			if render {
				renderer, err := glamour.NewTermRenderer(
					glamour.WithAutoStyle(),
					glamour.WithWordWrap(100),
				)
				if err == nil {
					if rendered, rerr := renderer.Render(resp.Markdown); rerr == nil {
						out = rendered
					}
				}
			}
			fmt.Print(out)

			for _, path := range resp.OutputPaths {
				okColor.Printf("wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(repoindex.ModeFull), "indexing depth: quick, full, update")
	cmd.Flags().IntVar(&maxEntries, "max-entries", 10, "maximum entries per category")
	cmd.Flags().BoolVar(&noDocs, "no-docs", false, "exclude documentation files")
	cmd.Flags().BoolVar(&noTests, "no-tests", false, "exclude test files")
	cmd.Flags().StringVar(&outputDir, "output", "", "directory to write PROJECT_INDEX.{md,json}")
	cmd.Flags().BoolVar(&render, "render", false, "render the Markdown index for the terminal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the JSON index instead of Markdown")
	return cmd
}
