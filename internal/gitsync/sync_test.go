package gitsync

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lsimons/auto/internal/gh"
	"github.com/lsimons/auto/internal/git"
)

func TestPartition(t *testing.T) {
	repos := []gh.Repo{
		{Name: "active-one"},
		{Name: "forked", IsFork: true},
		{Name: "old", IsArchived: true},
		{Name: "forked-and-archived", IsFork: true, IsArchived: true},
		{Name: "active-two"},
	}

	active, archived := Partition(repos)

	if len(active) != 2 || active[0] != "active-one" || active[1] != "active-two" {
		t.Errorf("active = %v", active)
	}
	if len(archived) != 1 || archived[0] != "old" {
		t.Errorf("archived = %v", archived)
	}
}

type fakeGH struct {
	repos []gh.Repo
	err   error
}

func (f *fakeGH) ListRepos(owner string, limit int) ([]gh.Repo, error) {
	return f.repos, f.err
}

// syncGit fakes the git operations the syncer touches and records them.
type syncGit struct {
	git.Client // panics on anything unexpected

	cloned    []string
	cloneDirs []string
	fetched   []string
	merged    []string

	local, remote, base string
}

// cloneDirs records the parent directory of each clone.
func (f *syncGit) Clone(parentDir, url string) error {
	f.cloned = append(f.cloned, url)
	f.cloneDirs = append(f.cloneDirs, parentDir)
	return nil
}

func (f *syncGit) FetchAll(dir string) error {
	f.fetched = append(f.fetched, dir)
	return nil
}

func (f *syncGit) RevParse(dir, ref string) (string, error) {
	if ref == "HEAD" {
		return f.local, nil
	}
	return f.remote, nil
}

func (f *syncGit) MergeBase(dir, a, b string) (string, error) { return f.base, nil }

func (f *syncGit) MergeFastForward(dir, ref string) error {
	f.merged = append(f.merged, dir)
	return nil
}

func TestSyncClonesMissingAndUpdatesExisting(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "have")
	if err := os.MkdirAll(existing, 0755); err != nil {
		t.Fatal(err)
	}

	fg := &syncGit{local: "aaa", remote: "aaa"}
	out := &bytes.Buffer{}
	s := &Syncer{
		GH:    &fakeGH{repos: []gh.Repo{{Name: "have"}, {Name: "missing"}}},
		Git:   fg,
		Owner: "lsimons",
		Root:  root,
		Out:   out,
	}

	if err := s.Sync(); err != nil {
		t.Fatal(err)
	}

	if len(fg.cloned) != 1 || fg.cloned[0] != "https://github.com/lsimons/missing.git" {
		t.Errorf("cloned = %v", fg.cloned)
	}
	if len(fg.fetched) != 1 || fg.fetched[0] != existing {
		t.Errorf("fetched = %v", fg.fetched)
	}
	if _, err := os.Stat(filepath.Join(root, "archive")); err != nil {
		t.Error("archive dir not created")
	}
}

func TestSyncArchivedGoesToArchiveDir(t *testing.T) {
	root := t.TempDir()
	fg := &syncGit{}
	s := &Syncer{
		GH:    &fakeGH{repos: []gh.Repo{{Name: "retired", IsArchived: true}}},
		Git:   fg,
		Owner: "lsimons",
		Root:  root,
		Out:   &bytes.Buffer{},
	}
	if err := s.Sync(); err != nil {
		t.Fatal(err)
	}
	if len(fg.cloned) != 1 {
		t.Fatalf("cloned = %v", fg.cloned)
	}
	if fg.cloneDirs[0] != filepath.Join(root, "archive") {
		t.Errorf("clone dir = %q, want archive subdir", fg.cloneDirs[0])
	}
}

func TestFastForwardWhenBehind(t *testing.T) {
	dir := t.TempDir()
	fg := &syncGit{local: "aaa", remote: "bbb", base: "aaa"}
	s := &Syncer{Git: fg, Out: &bytes.Buffer{}}

	if err := s.fastForward(dir); err != nil {
		t.Fatal(err)
	}
	if len(fg.merged) != 1 {
		t.Errorf("merged = %v, want one fast-forward", fg.merged)
	}
}

func TestFastForwardSkipsWhenAheadOrDiverged(t *testing.T) {
	tests := []struct {
		name                string
		local, remote, base string
	}{
		{"up to date", "aaa", "aaa", "aaa"},
		{"ahead", "bbb", "aaa", "aaa"},
		{"diverged", "bbb", "ccc", "aaa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg := &syncGit{local: tt.local, remote: tt.remote, base: tt.base}
			s := &Syncer{Git: fg, Out: &bytes.Buffer{}}
			if err := s.fastForward(t.TempDir()); err != nil {
				t.Fatal(err)
			}
			if len(fg.merged) != 0 {
				t.Errorf("unexpected fast-forward: %v", fg.merged)
			}
		})
	}
}

func TestSyncDryRun(t *testing.T) {
	out := &bytes.Buffer{}
	s := &Syncer{
		GH:     &fakeGH{repos: []gh.Repo{{Name: "thing"}}},
		Git:    &syncGit{},
		Owner:  "lsimons",
		Root:   filepath.Join(t.TempDir(), "git", "lsimons"),
		Out:    out,
		DryRun: true,
	}
	if err := s.Sync(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(s.Root); !os.IsNotExist(err) {
		t.Error("dry run created directories")
	}
	if !strings.Contains(out.String(), "Would sync repo: thing") {
		t.Errorf("output:\n%s", out.String())
	}
}
