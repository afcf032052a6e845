// Package repoindex generates a lightweight repository index for
// context-efficient prompting.
package repoindex

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Mode controls the walk depth.
type Mode string

// Indexing modes.
const (
	ModeQuick  Mode = "quick"
	ModeFull   Mode = "full"
	ModeUpdate Mode = "update"
)

var modeDepth = map[Mode]int{
	ModeFull:   6,
	ModeUpdate: 4,
	ModeQuick:  2,
}

// defaultIgnore lists directory names excluded from every walk.
var defaultIgnore = map[string]bool{
	".git":          true,
	".venv":         true,
	".idea":         true,
	"__pycache__":   true,
	"node_modules":  true,
	"dist":          true,
	"build":         true,
	".claude":       true,
	".pytest_cache": true,
	"vendor":        true,
}

// Request describes an indexing run.
type Request struct {
	RepoPath     string
	Mode         Mode
	IncludeDocs  bool
	IncludeTests bool
	MaxEntries   int
	OutputDir    string
}

// Entry is one item in the structure snapshot.
type Entry struct {
	Path      string `json:"path"`
	Type      string `json:"type"`
	FileCount int    `json:"file_count,omitempty"`
	Size      int64  `json:"size,omitempty"`
}

// EntryPoint is a detected program entry file.
type EntryPoint struct {
	File string `json:"file"`
	Hint string `json:"hint"`
}

// Stats summarizes the walk.
type Stats struct {
	Repo       string `json:"repo"`
	TotalFiles int    `json:"total_files"`
	Mode       Mode   `json:"mode"`
}

// Index is the structured index document.
type Index struct {
	Metadata      Stats        `json:"metadata"`
	Structure     []Entry      `json:"structure"`
	EntryPoints   []EntryPoint `json:"entry_points"`
	Documentation []string     `json:"documentation"`
	Configuration []string     `json:"configuration"`
	Tests         []string     `json:"tests"`
}

// Response carries the rendered index and any written files.
type Response struct {
	Markdown    string
	Index       Index
	Stats       Stats
	OutputPaths []string
}

// Generate walks the repository and builds the Markdown and JSON index.
// A missing repository path is a caller error; filesystem errors on
// individual entries are skipped, never fatal to the whole walk.
func Generate(req Request) (Response, error) {
	root, err := filepath.Abs(req.RepoPath)
	if err != nil {
		return Response{}, fmt.Errorf("resolve repo path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return Response{}, fmt.Errorf("repository path not found: %s", root)
	}
	if !info.IsDir() {
		return Response{}, fmt.Errorf("repository path is not a directory: %s", root)
	}

	mode := req.Mode
	if _, ok := modeDepth[mode]; !ok {
		mode = ModeFull
	}

	totalFiles := countFiles(root, modeDepth[mode])
	stats := Stats{Repo: root, TotalFiles: totalFiles, Mode: mode}

	index := Index{
		Metadata:      stats,
		Structure:     structureSnapshot(root, req.MaxEntries),
		EntryPoints:   findEntryPoints(root),
		Configuration: findConfigs(root),
	}
	if req.IncludeDocs {
		index.Documentation = findDocs(root)
	}
	if req.IncludeTests {
		index.Tests = findTests(root)
	}

	markdown := renderMarkdown(filepath.Base(root), stats, index)

	var outputs []string
	if req.OutputDir != "" {
		outputs, err = writeIndex(req.OutputDir, markdown, index)
		if err != nil {
			return Response{}, err
		}
	}

	return Response{Markdown: markdown, Index: index, Stats: stats, OutputPaths: outputs}, nil
}

func writeIndex(outputDir, markdown string, index Index) ([]string, error) {
	dir, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	mdPath := filepath.Join(dir, "PROJECT_INDEX.md")
	jsonPath := filepath.Join(dir, "PROJECT_INDEX.json")

	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return nil, fmt.Errorf("write markdown index: %w", err)
	}
	raw, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json index: %w", err)
	}
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("write json index: %w", err)
	}
	return []string{mdPath, jsonPath}, nil
}

func countFiles(root string, maxDepth int) int {
	count := 0
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := len(strings.Split(rel, string(filepath.Separator)))
		if d.IsDir() {
			if defaultIgnore[d.Name()] {
				return fs.SkipDir
			}
			if rel != "." && depth > maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		count++
		return nil
	})
	return count
}

func structureSnapshot(root string, maxEntries int) []Entry {
	children, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name() < children[j].Name() })

	var entries []Entry
	for _, child := range children {
		if defaultIgnore[child.Name()] {
			continue
		}
		if maxEntries > 0 && len(entries) >= maxEntries {
			break
		}
		if child.IsDir() {
			entries = append(entries, Entry{
				Path:      child.Name(),
				Type:      "dir",
				FileCount: countFilesUnder(filepath.Join(root, child.Name())),
			})
		} else {
			var size int64
			if info, err := child.Info(); err == nil {
				size = info.Size()
			}
			entries = append(entries, Entry{Path: child.Name(), Type: "file", Size: size})
		}
	}
	return entries
}

func countFilesUnder(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count
}

// entryPointPatterns are matched by exact filename, in table order.
var entryPointPatterns = []struct {
	name string
	hint string
}{
	{"main.go", "Go main entry"},
	{"main.py", "Python main entry"},
	{"cli.py", "CLI entry"},
	{"__main__.py", "Package entry"},
	{"manage.py", "Django management"},
	{"index.ts", "TypeScript entry"},
	{"index.js", "JavaScript entry"},
}

func findEntryPoints(root string) []EntryPoint {
	var entries []EntryPoint
	for _, pattern := range entryPointPatterns {
		for _, rel := range globRecursive(root, pattern.name) {
			entries = append(entries, EntryPoint{File: rel, Hint: pattern.hint})
		}
	}
	return entries
}

func findDocs(root string) []string {
	var docs []string
	if _, err := os.Stat(filepath.Join(root, "README.md")); err == nil {
		docs = append(docs, "README.md")
	}
	docsDir := filepath.Join(root, "docs")
	_ = filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			if rel, relErr := filepath.Rel(root, path); relErr == nil {
				docs = append(docs, rel)
			}
		}
		return nil
	})
	return sortedUnique(docs)
}

func findTests(root string) []string {
	var tests []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && defaultIgnore[d.Name()] {
			return fs.SkipDir
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		switch {
		case d.IsDir() && d.Name() == "tests":
			tests = append(tests, rel)
		case !d.IsDir() && strings.HasPrefix(d.Name(), "test_") && strings.HasSuffix(d.Name(), ".py"):
			tests = append(tests, rel)
		case !d.IsDir() && strings.HasSuffix(d.Name(), "_test.go"):
			tests = append(tests, rel)
		}
		return nil
	})
	return sortedUnique(tests)
}

func findConfigs(root string) []string {
	var configs []string
	children, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	for _, child := range children {
		if child.IsDir() {
			continue
		}
		switch filepath.Ext(child.Name()) {
		case ".toml", ".yaml", ".yml", ".json":
			configs = append(configs, child.Name())
		}
		if child.Name() == "go.mod" {
			configs = append(configs, child.Name())
		}
	}
	configs = append(configs, globRecursive(root, "pyproject.toml")...)
	return sortedUnique(configs)
}

func globRecursive(root, filename string) []string {
	var matches []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if defaultIgnore[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() == filename {
			if rel, relErr := filepath.Rel(root, path); relErr == nil {
				matches = append(matches, rel)
			}
		}
		return nil
	})
	return matches
}

func sortedUnique(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}
