// Package workspace discovers git workspaces under ~/git and matches
// user-supplied org/repo queries against them.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lsimons/auto/internal/constants"
)

// Workspace is a discovered org/repo checkout.
type Workspace struct {
	Org  string
	Repo string
	Path string
}

// NoMatchError indicates that a query matched no candidate.
type NoMatchError struct {
	Kind  string // "org" or "repo"
	Query string
	Org   string // set for repo lookups
}

func (e *NoMatchError) Error() string {
	if e.Kind == "repo" && e.Org != "" {
		return fmt.Sprintf("no repo found matching %q in org %q", e.Query, e.Org)
	}
	return fmt.Sprintf("no %s found matching %q", e.Kind, e.Query)
}

// AmbiguousError indicates that a query matched more than one candidate and
// no exact match broke the tie.
type AmbiguousError struct {
	Kind    string
	Query   string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s match for %q: %s", e.Kind, e.Query, strings.Join(e.Matches, ", "))
}

// Discover scans gitRoot for an org/repo directory structure. Hidden entries
// and worktree sibling directories are skipped, as are orgs without repos.
// An empty gitRoot defaults to ~/git.
func Discover(gitRoot string) (map[string]map[string]string, error) {
	if gitRoot == "" {
		gitRoot = constants.GitRoot()
	}

	workspaces := make(map[string]map[string]string)

	orgEntries, err := os.ReadDir(gitRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return workspaces, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", gitRoot, err)
	}

	for _, orgEntry := range orgEntries {
		if !orgEntry.IsDir() || strings.HasPrefix(orgEntry.Name(), ".") {
			continue
		}

		orgDir := filepath.Join(gitRoot, orgEntry.Name())
		repoEntries, err := os.ReadDir(orgDir)
		if err != nil {
			continue
		}

		repos := make(map[string]string)
		for _, repoEntry := range repoEntries {
			name := repoEntry.Name()
			if !repoEntry.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			if strings.HasSuffix(name, constants.WorktreesDirSuffix) {
				continue
			}
			repos[name] = filepath.Join(orgDir, name)
		}

		if len(repos) > 0 {
			workspaces[orgEntry.Name()] = repos
		}
	}

	return workspaces, nil
}

// All flattens the discovery map into a sorted list of workspaces.
func All(workspaces map[string]map[string]string) []Workspace {
	var out []Workspace
	for org, repos := range workspaces {
		for repo, path := range repos {
			out = append(out, Workspace{Org: org, Repo: repo, Path: path})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Org != out[j].Org {
			return out[i].Org < out[j].Org
		}
		return out[i].Repo < out[j].Repo
	})
	return out
}

// Match resolves org and repo queries against discovered workspaces using
// case-insensitive substring containment. A query that matches several
// candidates is ambiguous unless exactly one of them matches exactly
// (ignoring case), in which case the exact match wins.
func Match(queryOrg, queryRepo string, workspaces map[string]map[string]string) (*Workspace, error) {
	orgs := make([]string, 0, len(workspaces))
	for org := range workspaces {
		orgs = append(orgs, org)
	}

	org, err := matchOne("org", queryOrg, orgs)
	if err != nil {
		return nil, err
	}

	repos := workspaces[org]
	names := make([]string, 0, len(repos))
	for name := range repos {
		names = append(names, name)
	}

	repo, err := matchOne("repo", queryRepo, names)
	if err != nil {
		if nme, ok := err.(*NoMatchError); ok {
			nme.Org = org
		}
		return nil, err
	}

	return &Workspace{Org: org, Repo: repo, Path: repos[repo]}, nil
}

// matchOne applies the containment-with-exact-tie-break matching rule to a
// single candidate list.
func matchOne(kind, query string, candidates []string) (string, error) {
	queryLower := strings.ToLower(query)

	var matches []string
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), queryLower) {
			matches = append(matches, c)
		}
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", &NoMatchError{Kind: kind, Query: query}
	case 1:
		return matches[0], nil
	}

	var exact []string
	for _, m := range matches {
		if strings.EqualFold(m, query) {
			exact = append(exact, m)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}

	return "", &AmbiguousError{Kind: kind, Query: query, Matches: matches}
}
