package doctor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/agiletec/airis/internal/claudecfg"
	"github.com/agiletec/airis/internal/config"
	"github.com/agiletec/airis/internal/db"
	"github.com/stretchr/testify/require"
)

func checkByName(t *testing.T, checks []Check, name string) Check {
	t.Helper()
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in %v", name, checks)
	return Check{}
}

func TestRun_FreshEnvironmentWarns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := Options{
		Config: config.Config{
			LearningDB: filepath.Join(dir, "learning.db"),
			Suite:      config.SuiteConfig{BaseDir: filepath.Join(dir, "github")},
		},
		SettingsPath: filepath.Join(dir, "settings.json"),
	}

	checks := Run(context.Background(), opts)
	require.Len(t, checks, 4)

	require.Equal(t, StatusWarn, checkByName(t, checks, "learning database").Status)
	require.Equal(t, StatusWarn, checkByName(t, checks, "suite base directory").Status)
	require.Equal(t, StatusWarn, checkByName(t, checks, "claude plugin").Status)
}

func TestRun_HealthyEnvironment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "learning.db")

	store, err := db.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	settingsPath := filepath.Join(dir, "settings.json")
	_, _, err = claudecfg.EnsurePlugin(claudecfg.Options{SettingsPath: settingsPath})
	require.NoError(t, err)

	opts := Options{
		Config: config.Config{
			LearningDB: dbPath,
			Suite:      config.SuiteConfig{BaseDir: dir},
		},
		SettingsPath: settingsPath,
	}

	checks := Run(context.Background(), opts)
	require.Equal(t, StatusOK, checkByName(t, checks, "learning database").Status)
	require.Equal(t, StatusOK, checkByName(t, checks, "suite base directory").Status)
	require.Equal(t, StatusOK, checkByName(t, checks, "claude plugin").Status)
}

func TestRun_MissingLearningDBConfig(t *testing.T) {
	t.Parallel()

	checks := Run(context.Background(), Options{
		Config:       config.Config{Suite: config.SuiteConfig{BaseDir: t.TempDir()}},
		SettingsPath: filepath.Join(t.TempDir(), "settings.json"),
	})
	require.Equal(t, StatusFail, checkByName(t, checks, "learning database").Status)
}
