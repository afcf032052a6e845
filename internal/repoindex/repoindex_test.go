package repoindex

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scaffoldRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("README.md", "# demo")
	write("go.mod", "module demo\n")
	write("config.yaml", "debug: false\n")
	write("cmd/demo/main.go", "package main\n")
	write("internal/core/core.go", "package core\n")
	write("internal/core/core_test.go", "package core\n")
	write("docs/guide.md", "# guide")
	write("docs/api/reference.md", "# api")
	write("tests/test_smoke.py", "def test_smoke(): pass\n")
	// Ignored directories stay out of every listing.
	write(".git/HEAD", "ref: refs/heads/main\n")
	write("node_modules/pkg/index.js", "module.exports = {}\n")
	return root
}

func TestGenerateRejectsMissingPath(t *testing.T) {
	t.Parallel()

	_, err := Generate(Request{RepoPath: filepath.Join(t.TempDir(), "nope"), Mode: ModeFull})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGenerateIndexSections(t *testing.T) {
	t.Parallel()

	root := scaffoldRepo(t)
	resp, err := Generate(Request{
		RepoPath:     root,
		Mode:         ModeFull,
		IncludeDocs:  true,
		IncludeTests: true,
		MaxEntries:   10,
	})
	require.NoError(t, err)

	assert.Equal(t, ModeFull, resp.Stats.Mode)
	assert.Greater(t, resp.Stats.TotalFiles, 0)

	// Entry points.
	require.NotEmpty(t, resp.Index.EntryPoints)
	assert.Equal(t, filepath.Join("cmd", "demo", "main.go"), resp.Index.EntryPoints[0].File)
	assert.Equal(t, "Go main entry", resp.Index.EntryPoints[0].Hint)

	// Docs include README and nested docs markdown.
	assert.Contains(t, resp.Index.Documentation, "README.md")
	assert.Contains(t, resp.Index.Documentation, filepath.Join("docs", "guide.md"))
	assert.Contains(t, resp.Index.Documentation, filepath.Join("docs", "api", "reference.md"))

	// Configs by extension plus go.mod.
	assert.Contains(t, resp.Index.Configuration, "config.yaml")
	assert.Contains(t, resp.Index.Configuration, "go.mod")

	// Tests: dirs, python test files, go test files.
	assert.Contains(t, resp.Index.Tests, "tests")
	assert.Contains(t, resp.Index.Tests, filepath.Join("tests", "test_smoke.py"))
	assert.Contains(t, resp.Index.Tests, filepath.Join("internal", "core", "core_test.go"))

	// Ignored directories never leak into the snapshot.
	for _, entry := range resp.Index.Structure {
		assert.NotEqual(t, ".git", entry.Path)
		assert.NotEqual(t, "node_modules", entry.Path)
	}

	assert.Contains(t, resp.Markdown, "# Project Index:")
	assert.Contains(t, resp.Markdown, "## 📁 Structure Snapshot")
	assert.Contains(t, resp.Markdown, "## 🚀 Entry Points")
}

func TestGenerateRespectsToggles(t *testing.T) {
	t.Parallel()

	root := scaffoldRepo(t)
	resp, err := Generate(Request{RepoPath: root, Mode: ModeQuick, MaxEntries: 10})
	require.NoError(t, err)

	assert.Empty(t, resp.Index.Documentation)
	assert.Empty(t, resp.Index.Tests)
	assert.NotContains(t, resp.Markdown, "## 📚 Documentation")
	assert.NotContains(t, resp.Markdown, "## 🧪 Tests")
}

func TestGenerateCapsStructureEntries(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}

	resp, err := Generate(Request{RepoPath: root, Mode: ModeFull, MaxEntries: 3})
	require.NoError(t, err)
	assert.Len(t, resp.Index.Structure, 3)
}

func TestGenerateWritesIndexFiles(t *testing.T) {
	t.Parallel()

	root := scaffoldRepo(t)
	outDir := filepath.Join(t.TempDir(), "out")

	resp, err := Generate(Request{
		RepoPath:     root,
		Mode:         ModeUpdate,
		IncludeDocs:  true,
		IncludeTests: true,
		MaxEntries:   10,
		OutputDir:    outDir,
	})
	require.NoError(t, err)
	require.Len(t, resp.OutputPaths, 2)

	mdPath := filepath.Join(outDir, "PROJECT_INDEX.md")
	jsonPath := filepath.Join(outDir, "PROJECT_INDEX.json")
	assert.Equal(t, []string{mdPath, jsonPath}, resp.OutputPaths)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, resp.Markdown, string(md))

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded Index
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, resp.Index.Metadata.TotalFiles, decoded.Metadata.TotalFiles)
	assert.Equal(t, resp.Index.EntryPoints, decoded.EntryPoints)
}

func TestGenerateUnknownModeDefaultsToFull(t *testing.T) {
	t.Parallel()

	root := scaffoldRepo(t)
	resp, err := Generate(Request{RepoPath: root, Mode: Mode("bottomless"), MaxEntries: 10})
	require.NoError(t, err)
	assert.Equal(t, ModeFull, resp.Stats.Mode)
}
