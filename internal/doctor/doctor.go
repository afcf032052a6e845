// Package doctor runs environment health checks for the airis toolkit.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/agiletec/airis/internal/claudecfg"
	"github.com/agiletec/airis/internal/config"
	"github.com/agiletec/airis/internal/db"
)

// Check statuses.
const (
	StatusOK   = "ok"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Check is one health check result.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Options points the checks at the environment under inspection.
type Options struct {
	Config       config.Config
	SettingsPath string
}

// Run executes all checks and never fails as a whole; problems surface as
// warn or fail statuses on individual checks.
func Run(ctx context.Context, opts Options) []Check {
	return []Check{
		checkGit(ctx),
		checkLearningDB(ctx, opts.Config.LearningDB),
		checkSuiteDir(opts.Config.Suite.BaseDir),
		checkClaudePlugin(opts.SettingsPath),
	}
}

func checkGit(ctx context.Context) Check {
	c := Check{Name: "git binary"}
	path, err := exec.LookPath("git")
	if err != nil {
		c.Status = StatusFail
		c.Detail = "git not found on PATH; suite installation will not work"
		return c
	}
	if err := exec.CommandContext(ctx, path, "--version").Run(); err != nil {
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("git found but not runnable: %v", err)
		return c
	}
	c.Status = StatusOK
	c.Detail = path
	return c
}

func checkLearningDB(ctx context.Context, path string) Check {
	c := Check{Name: "learning database"}
	if path == "" {
		c.Status = StatusFail
		c.Detail = "learning_db is not configured"
		return c
	}
	resolved, err := config.ExpandHome(path)
	if err != nil {
		c.Status = StatusFail
		c.Detail = err.Error()
		return c
	}
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		c.Status = StatusWarn
		c.Detail = fmt.Sprintf("%s does not exist yet; it is created on first reflexion run", resolved)
		return c
	}
	store, err := db.Open(resolved)
	if err != nil {
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("open %s: %v", resolved, err)
		return c
	}
	defer func() { _ = store.Close() }()

	count, err := db.NewLearningStore(store).Count(ctx)
	if err != nil {
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("query %s: %v", resolved, err)
		return c
	}
	c.Status = StatusOK
	c.Detail = fmt.Sprintf("%s (%d past errors)", resolved, count)
	return c
}

func checkSuiteDir(baseDir string) Check {
	c := Check{Name: "suite base directory"}
	resolved, err := config.ExpandHome(baseDir)
	if err != nil {
		c.Status = StatusFail
		c.Detail = err.Error()
		return c
	}
	info, err := os.Stat(resolved)
	switch {
	case os.IsNotExist(err):
		c.Status = StatusWarn
		c.Detail = fmt.Sprintf("%s does not exist; run 'airis install-suite' to create it", resolved)
	case err != nil:
		c.Status = StatusFail
		c.Detail = err.Error()
	case !info.IsDir():
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("%s exists but is not a directory", resolved)
	default:
		c.Status = StatusOK
		c.Detail = resolved
	}
	return c
}

func checkClaudePlugin(settingsPath string) Check {
	c := Check{Name: "claude plugin"}
	if settingsPath == "" {
		var err error
		settingsPath, err = claudecfg.DefaultSettingsPath()
		if err != nil {
			c.Status = StatusFail
			c.Detail = err.Error()
			return c
		}
	}
	configured, err := claudecfg.PluginConfigured(claudecfg.Options{SettingsPath: settingsPath})
	if err != nil {
		c.Status = StatusFail
		c.Detail = err.Error()
		return c
	}
	if !configured {
		c.Status = StatusWarn
		c.Detail = fmt.Sprintf("plugin not enabled in %s; run 'airis install-claude-plugin'", settingsPath)
		return c
	}
	c.Status = StatusOK
	c.Detail = settingsPath
	return c
}
