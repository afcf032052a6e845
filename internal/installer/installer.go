// Package installer clones and updates the OSS Airis Suite repositories.
package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Repo describes one Airis Suite repository.
type Repo struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Branch string `json:"branch,omitempty"`
}

// URL returns the clone URL for the given protocol.
func (r Repo) URL(protocol string) (string, error) {
	switch protocol {
	case "ssh":
		return fmt.Sprintf("git@github.com:%s.git", r.Slug), nil
	case "https":
		return fmt.Sprintf("https://github.com/%s.git", r.Slug), nil
	default:
		return "", fmt.Errorf("unsupported protocol %q", protocol)
	}
}

// DefaultRepos lists the suite repositories installed when no custom list is
// given.
var DefaultRepos = []Repo{
	{Name: "airis-mcp-gateway", Slug: "agiletec-inc/airis-mcp-gateway", Branch: "main"},
	{Name: "airis-workspace", Slug: "agiletec-inc/airis-workspace", Branch: "main"},
	{Name: "airiscode", Slug: "agiletec-inc/airiscode", Branch: "main"},
	{Name: "mindbase", Slug: "agiletec-inc/mindbase", Branch: "main"},
}

// Per-repo outcome labels.
const (
	StatusCloned      = "cloned"
	StatusUpdated     = "updated"
	StatusReinstalled = "reinstalled"
	StatusExists      = "exists"
	StatusError       = "error"
)

// Status reports the outcome for one repository.
type Status struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Options configures a suite installation run.
type Options struct {
	BaseDir        string
	Repos          []Repo
	UpdateExisting bool
	ForceReinstall bool
	Protocol       string
}

// Runner executes a git command in dir. Tests substitute a fake.
type Runner func(ctx context.Context, dir string, args ...string) error

// Installer installs the suite repositories via git.
type Installer struct {
	run Runner
}

// New returns an Installer backed by the git binary.
func New() *Installer {
	return &Installer{run: runGit}
}

// NewWithRunner returns an Installer using a custom command runner.
func NewWithRunner(run Runner) *Installer {
	return &Installer{run: run}
}

func runGit(ctx context.Context, dir string, args ...string) error {
	log.Debug().Str("dir", dir).Strs("args", args).Msg("running git command")
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = "unknown git error"
		}
		return fmt.Errorf("git %s failed: %s", strings.Join(args, " "), msg)
	}
	return nil
}

// Install clones or updates every repository in opts. A failure on one
// repository is recorded in its Status and never aborts the batch.
func (i *Installer) Install(ctx context.Context, opts Options) ([]Status, error) {
	if opts.Protocol == "" {
		opts.Protocol = "ssh"
	}
	if opts.Protocol != "ssh" && opts.Protocol != "https" {
		return nil, fmt.Errorf("protocol must be 'ssh' or 'https'")
	}
	repos := opts.Repos
	if repos == nil {
		repos = DefaultRepos
	}
	if opts.BaseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(opts.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}

	results := make([]Status, 0, len(repos))
	for _, repo := range repos {
		target := filepath.Join(opts.BaseDir, repo.Name)
		status := Status{Name: repo.Name, Path: target}

		switch {
		case exists(target) && opts.ForceReinstall:
			if err := os.RemoveAll(target); err != nil {
				status.Status = StatusError
				status.Message = fmt.Sprintf("remove existing directory: %v", err)
				break
			}
			if err := i.clone(ctx, repo, target, opts.Protocol); err != nil {
				status.Status = StatusError
				status.Message = err.Error()
				break
			}
			status.Status = StatusReinstalled
			status.Message = "Removed existing directory and cloned again"
		case exists(target) && opts.UpdateExisting:
			if err := i.run(ctx, target, "pull", "--ff-only"); err != nil {
				status.Status = StatusError
				status.Message = err.Error()
				break
			}
			status.Status = StatusUpdated
			status.Message = "Repository already existed; pulled latest changes"
		case exists(target):
			status.Status = StatusExists
			status.Message = "Repository already exists; skipped"
		default:
			if err := i.clone(ctx, repo, target, opts.Protocol); err != nil {
				status.Status = StatusError
				status.Message = err.Error()
				break
			}
			status.Status = StatusCloned
			status.Message = "Repository cloned"
		}

		log.Info().
			Str("repo", repo.Name).
			Str("status", status.Status).
			Str("path", target).
			Msg("suite repository processed")
		results = append(results, status)
	}
	return results, nil
}

func (i *Installer) clone(ctx context.Context, repo Repo, target, protocol string) error {
	url, err := repo.URL(protocol)
	if err != nil {
		return err
	}
	args := []string{"clone"}
	if repo.Branch != "" {
		args = append(args, "--branch", repo.Branch)
	}
	args = append(args, url, target)
	return i.run(ctx, "", args...)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
