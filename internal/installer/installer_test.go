package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type call struct {
	dir  string
	args []string
}

func recordingRunner(calls *[]call, fail func(args []string) error) Runner {
	return func(_ context.Context, dir string, args ...string) error {
		*calls = append(*calls, call{dir: dir, args: args})
		if fail != nil {
			return fail(args)
		}
		return nil
	}
}

func TestInstall_ClonesMissingRepos(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	var calls []call
	inst := NewWithRunner(recordingRunner(&calls, nil))

	repos := []Repo{{Name: "mindbase", Slug: "agiletec-inc/mindbase", Branch: "main"}}
	results, err := inst.Install(context.Background(), Options{BaseDir: base, Repos: repos})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, StatusCloned, results[0].Status)
	require.Equal(t, filepath.Join(base, "mindbase"), results[0].Path)

	require.Len(t, calls, 1)
	require.Equal(t, []string{
		"clone", "--branch", "main",
		"git@github.com:agiletec-inc/mindbase.git",
		filepath.Join(base, "mindbase"),
	}, calls[0].args)
}

func TestInstall_SkipsExistingByDefault(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "airiscode"), 0o755))

	var calls []call
	inst := NewWithRunner(recordingRunner(&calls, nil))

	repos := []Repo{{Name: "airiscode", Slug: "agiletec-inc/airiscode"}}
	results, err := inst.Install(context.Background(), Options{BaseDir: base, Repos: repos})
	require.NoError(t, err)
	require.Equal(t, StatusExists, results[0].Status)
	require.Empty(t, calls)
}

func TestInstall_UpdatesExistingWhenRequested(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	target := filepath.Join(base, "airis-workspace")
	require.NoError(t, os.MkdirAll(target, 0o755))

	var calls []call
	inst := NewWithRunner(recordingRunner(&calls, nil))

	repos := []Repo{{Name: "airis-workspace", Slug: "agiletec-inc/airis-workspace"}}
	results, err := inst.Install(context.Background(), Options{
		BaseDir:        base,
		Repos:          repos,
		UpdateExisting: true,
	})
	require.NoError(t, err)
	require.Equal(t, StatusUpdated, results[0].Status)

	require.Len(t, calls, 1)
	require.Equal(t, target, calls[0].dir)
	require.Equal(t, []string{"pull", "--ff-only"}, calls[0].args)
}

func TestInstall_ForceReinstallRemovesAndClones(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	target := filepath.Join(base, "mindbase")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "stale"), []byte("x"), 0o644))

	var calls []call
	inst := NewWithRunner(recordingRunner(&calls, nil))

	repos := []Repo{{Name: "mindbase", Slug: "agiletec-inc/mindbase", Branch: "main"}}
	results, err := inst.Install(context.Background(), Options{
		BaseDir:        base,
		Repos:          repos,
		ForceReinstall: true,
	})
	require.NoError(t, err)
	require.Equal(t, StatusReinstalled, results[0].Status)

	if _, statErr := os.Stat(filepath.Join(target, "stale")); !os.IsNotExist(statErr) {
		t.Fatalf("stale file survived reinstall: %v", statErr)
	}
	require.Len(t, calls, 1)
	require.Equal(t, "clone", calls[0].args[0])
}

func TestInstall_FailureDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	var calls []call
	fail := func(args []string) error {
		if strings.Contains(args[len(args)-1], "airiscode") {
			return errors.New("git clone failed: remote unavailable")
		}
		return nil
	}
	inst := NewWithRunner(recordingRunner(&calls, fail))

	repos := []Repo{
		{Name: "airiscode", Slug: "agiletec-inc/airiscode"},
		{Name: "mindbase", Slug: "agiletec-inc/mindbase"},
	}
	results, err := inst.Install(context.Background(), Options{BaseDir: base, Repos: repos})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, StatusError, results[0].Status)
	require.Contains(t, results[0].Message, "remote unavailable")
	require.Equal(t, StatusCloned, results[1].Status)
}

func TestInstall_RejectsUnknownProtocol(t *testing.T) {
	t.Parallel()

	inst := NewWithRunner(recordingRunner(&[]call{}, nil))
	_, err := inst.Install(context.Background(), Options{BaseDir: t.TempDir(), Protocol: "ftp"})
	require.Error(t, err)
}

func TestRepoURL(t *testing.T) {
	t.Parallel()

	repo := Repo{Name: "mindbase", Slug: "agiletec-inc/mindbase"}

	ssh, err := repo.URL("ssh")
	require.NoError(t, err)
	require.Equal(t, "git@github.com:agiletec-inc/mindbase.git", ssh)

	https, err := repo.URL("https")
	require.NoError(t, err)
	require.Equal(t, "https://github.com/agiletec-inc/mindbase.git", https)

	_, err = repo.URL("ftp")
	require.Error(t, err)
}
