// Package gh wraps the GitHub CLI.
package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/lsimons/auto/internal/constants"
)

// ErrNotInstalled indicates that the gh binary is not on PATH.
var ErrNotInstalled = errors.New("'gh' command not found. Please install GitHub CLI")

// Repo is the subset of repository fields git-sync cares about.
type Repo struct {
	Name       string `json:"name"`
	IsFork     bool   `json:"isFork"`
	IsArchived bool   `json:"isArchived"`
}

// Client lists repositories for an account.
type Client interface {
	ListRepos(owner string, limit int) ([]Repo, error)
}

type ghClient struct{}

// New creates a new GitHub CLI client.
func New() Client {
	return &ghClient{}
}

var _ Client = (*ghClient)(nil)

func (c *ghClient) ListRepos(owner string, limit int) ([]Repo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.CloneTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "gh", "repo", "list", owner,
		"-L", strconv.Itoa(limit), "--json", "name,isFork,isArchived")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrNotInstalled
		}
		return nil, fmt.Errorf("failed to fetch repo list: %w: %s", err, stderr.String())
	}

	var repos []Repo
	if err := json.Unmarshal(stdout.Bytes(), &repos); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}
	return repos, nil
}
