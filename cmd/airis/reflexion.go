package main

import (
	"fmt"

	"github.com/agiletec/airis/internal/budget"
	"github.com/agiletec/airis/internal/db"
	"github.com/agiletec/airis/internal/reflexion"
	"github.com/spf13/cobra"
)

func reflexionCmd() *cobra.Command {
	var (
		category    string
		lookupOnly  bool
		tokenBudget int
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "reflexion <error-message>",
		Short: "Run a cache-first reflexion cycle for an error",
		Long:  "Look the error up in the learning store first; only novel errors trigger a full investigation, and their solutions are recorded for next time.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, ok := reflexion.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			storeDB, closeFn, err := openLearningDB(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			store := db.NewLearningStore(storeDB)
			engine := reflexion.NewEngine(store, reflexion.WithMindbase(cfg.Mindbase))

			if lookupOnly {
				lookup, err := engine.Lookup(cmd.Context(), args[0], cat)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(lookup)
				}
				if !lookup.Found {
					warnColor.Println("no past occurrence found")
					return nil
				}
				okColor.Printf("found via %s\n", lookup.Source)
				fmt.Printf("Solution: %s\n", lookup.Solution)
				return nil
			}

			tracker, err := budget.NewTracker(tokenBudget)
			if err != nil {
				return err
			}

			result, err := engine.ExecuteCycle(cmd.Context(), args[0], cat)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(result)
			}

			if result.TimeSaved {
				okColor.Printf("known error, solution reused (source: %s)\n", result.Lookup.Source)
			} else {
				warnColor.Println("novel error, investigation performed and learning captured")
			}
			fmt.Printf("Solution: %s\n", result.SolutionApplied)
			if err := tracker.Consume(result.TokensUsed); err != nil {
				warnColor.Printf("Tokens used: %d (over the %d budget)\n", result.TokensUsed, tracker.Budget())
			} else {
				fmt.Printf("Tokens used: %d (%d remaining of %d)\n", result.TokensUsed, tracker.Remaining(), tracker.Budget())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", string(reflexion.CategoryLogic), "error category: configuration, dependency, logic, integration, security")
	cmd.Flags().BoolVar(&lookupOnly, "lookup-only", false, "only consult the learning store, do not investigate")
	cmd.Flags().IntVar(&tokenBudget, "budget", 2500, "token budget for the cycle")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON output")
	return cmd
}
