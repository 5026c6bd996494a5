package git

import "testing"

func TestParseWorktreeList(t *testing.T) {
	output := `worktree /home/u/git/org/repo
HEAD 1111111111111111111111111111111111111111
branch refs/heads/main

worktree /home/u/git/org/repo-worktrees/M
HEAD 2222222222222222222222222222222222222222
branch refs/heads/M-20250101-120000

worktree /home/u/git/org/repo-worktrees/001
HEAD 3333333333333333333333333333333333333333
detached
`

	worktrees := ParseWorktreeList(output)
	if len(worktrees) != 3 {
		t.Fatalf("expected 3 worktrees, got %d", len(worktrees))
	}

	if worktrees[0].Path != "/home/u/git/org/repo" {
		t.Errorf("worktrees[0].Path = %q", worktrees[0].Path)
	}
	if worktrees[0].Branch != "main" {
		t.Errorf("worktrees[0].Branch = %q, want main", worktrees[0].Branch)
	}

	if worktrees[1].Branch != "M-20250101-120000" {
		t.Errorf("worktrees[1].Branch = %q", worktrees[1].Branch)
	}
	if worktrees[1].Head != "2222222222222222222222222222222222222222" {
		t.Errorf("worktrees[1].Head = %q", worktrees[1].Head)
	}

	if worktrees[2].Branch != "" {
		t.Errorf("detached worktree should have empty branch, got %q", worktrees[2].Branch)
	}
}

func TestParseWorktreeListEmpty(t *testing.T) {
	if got := ParseWorktreeList(""); len(got) != 0 {
		t.Errorf("expected no worktrees, got %v", got)
	}
}
