package main

import (
	"fmt"

	"github.com/agiletec/airis/internal/research"
	"github.com/spf13/cobra"
)

func researchCmd() *cobra.Command {
	var (
		depth       string
		constraints []string
		seedSources []string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "research <query>",
		Short: "Plan a multi-wave research session",
		Long:  "Build a wave/query plan for the research question and synthesize preliminary findings with confidence scoring.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := research.Plan(research.Request{
				Query:       args[0],
				Depth:       research.Depth(depth),
				Constraints: constraints,
				SeedSources: seedSources,
			})
			if asJSON {
				return printJSON(resp)
			}

			fmt.Println(resp.Summary)
			for _, wave := range resp.Plan {
				fmt.Printf("Wave %d:\n", wave.Wave)
				for _, query := range wave.Queries {
					fmt.Printf("  - %s\n", query)
				}
			}
			if len(resp.Findings) > 0 {
				fmt.Println("Findings:")
				for _, finding := range resp.Findings {
					fmt.Printf("  - %s\n", finding)
				}
			}
			fmt.Printf("Confidence: %.2f\n", resp.Confidence)
			return nil
		},
	}
	cmd.Flags().StringVar(&depth, "depth", string(research.DepthStandard), "research depth: quick, standard, deep, exhaustive")
	cmd.Flags().StringArrayVar(&constraints, "constraint", nil, "constraint or focus area (repeatable)")
	cmd.Flags().StringArrayVar(&seedSources, "seed", nil, "initial source to start from (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON output")
	return cmd
}
