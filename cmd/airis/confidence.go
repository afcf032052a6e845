package main

import (
	"fmt"

	"github.com/agiletec/airis/internal/gate"
	"github.com/spf13/cobra"
)

func confidenceCmd() *cobra.Command {
	var (
		duplicateCheck    bool
		architectureCheck bool
		docsVerified      bool
		ossReference      bool
		rootCause         bool
		asJSON            bool
	)
	cmd := &cobra.Command{
		Use:   "confidence <task>",
		Short: "Assess pre-implementation confidence for a task",
		Long:  "Score readiness to start a task. Returns proceed, investigate, or stop together with the evidence checklist.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := gate.Evaluate(gate.Request{
				Task:                      args[0],
				DuplicateCheckComplete:    duplicateCheck,
				ArchitectureCheckComplete: architectureCheck,
				OfficialDocsVerified:      docsVerified,
				OSSReferenceComplete:      ossReference,
				RootCauseIdentified:       rootCause,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(resp)
			}

			fmt.Printf("Score: %.2f\n", resp.Score)
			verdictColor(string(resp.Action)).Printf("Action: %s\n", resp.Action)
			for _, check := range resp.Checks {
				fmt.Printf("  %s\n", check)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&duplicateCheck, "duplicate-check", false, "duplicate work has been checked")
	cmd.Flags().BoolVar(&architectureCheck, "architecture-check", false, "architecture compliance has been verified")
	cmd.Flags().BoolVar(&docsVerified, "docs-verified", false, "official documentation has been reviewed")
	cmd.Flags().BoolVar(&ossReference, "oss-reference", false, "OSS references have been consulted")
	cmd.Flags().BoolVar(&rootCause, "root-cause", false, "root cause has been identified (for bugs)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON output")
	return cmd
}
