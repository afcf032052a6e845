package main

import (
	"fmt"

	"github.com/agiletec/airis/internal/doctor"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the health of the airis environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			checks := doctor.Run(cmd.Context(), doctor.Options{Config: cfg})
			if asJSON {
				return printJSON(checks)
			}

			failed := false
			for _, check := range checks {
				verdictColor(check.Status).Printf("[%s] ", check.Status)
				fmt.Printf("%s: %s\n", check.Name, check.Detail)
				if check.Status == doctor.StatusFail {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("one or more checks failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON output")
	return cmd
}
