package main

import (
	"fmt"

	"github.com/agiletec/airis/internal/claudecfg"
	"github.com/agiletec/airis/internal/config"
	"github.com/agiletec/airis/internal/installer"
	"github.com/spf13/cobra"
)

func installSuiteCmd() *cobra.Command {
	var (
		baseDir  string
		protocol string
		update   bool
		force    bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "install-suite",
		Short: "Clone or update the OSS Airis Suite repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if baseDir == "" {
				baseDir = cfg.Suite.BaseDir
			}
			if protocol == "" {
				protocol = cfg.Suite.Protocol
			}
			resolved, err := config.ExpandHome(baseDir)
			if err != nil {
				return err
			}

			results, err := installer.New().Install(cmd.Context(), installer.Options{
				BaseDir:        resolved,
				UpdateExisting: update,
				ForceReinstall: force,
				Protocol:       protocol,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(results)
			}

			failed := 0
			for _, result := range results {
				verdictColor(result.Status).Printf("[%s] ", result.Status)
				fmt.Printf("%s: %s\n", result.Name, result.Message)
				if result.Status == installer.StatusError {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "directory to install the suite into (defaults to config)")
	cmd.Flags().StringVar(&protocol, "protocol", "", "clone protocol: ssh or https (defaults to config)")
	cmd.Flags().BoolVar(&update, "update", false, "pull existing repositories")
	cmd.Flags().BoolVar(&force, "force", false, "remove and re-clone existing repositories")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON output")
	return cmd
}

func installClaudePluginCmd() *cobra.Command {
	var settingsPath string
	cmd := &cobra.Command{
		Use:   "install-claude-plugin",
		Short: "Enable the airis plugin in Claude Code settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := settingsPath
			if path == "" {
				var err error
				path, err = claudecfg.DefaultSettingsPath()
				if err != nil {
					return err
				}
			}

			changed, msg, err := claudecfg.EnsurePlugin(claudecfg.Options{SettingsPath: path})
			if err != nil {
				return err
			}
			if changed {
				okColor.Println(msg)
			} else {
				fmt.Println(msg)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&settingsPath, "settings", "", "path to Claude settings.json (defaults to ~/.claude/settings.json)")
	return cmd
}
