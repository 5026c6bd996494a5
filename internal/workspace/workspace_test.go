package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()

	mustMkdir(t, filepath.Join(root, "lsimons", "lsimons-auto"))
	mustMkdir(t, filepath.Join(root, "lsimons", "dotfiles"))
	mustMkdir(t, filepath.Join(root, "lsimons", "lsimons-auto-worktrees"))
	mustMkdir(t, filepath.Join(root, "acme", "widget"))
	mustMkdir(t, filepath.Join(root, ".hidden", "repo"))
	mustMkdir(t, filepath.Join(root, "empty-org"))
	if err := os.WriteFile(filepath.Join(root, "stray-file"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	workspaces, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if len(workspaces) != 2 {
		t.Fatalf("expected 2 orgs, got %d: %v", len(workspaces), workspaces)
	}

	repos, ok := workspaces["lsimons"]
	if !ok {
		t.Fatal("expected org 'lsimons'")
	}
	if len(repos) != 2 {
		t.Errorf("expected 2 repos in lsimons, got %d: %v", len(repos), repos)
	}
	if _, ok := repos["lsimons-auto-worktrees"]; ok {
		t.Error("worktrees directory should be skipped")
	}

	want := filepath.Join(root, "acme", "widget")
	if got := workspaces["acme"]["widget"]; got != want {
		t.Errorf("expected path %s, got %s", want, got)
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	workspaces, err := Discover(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(workspaces) != 0 {
		t.Errorf("expected empty result, got %v", workspaces)
	}
}

func TestMatch(t *testing.T) {
	workspaces := map[string]map[string]string{
		"lsimons": {
			"lsimons-auto": "/git/lsimons/lsimons-auto",
			"dotfiles":     "/git/lsimons/dotfiles",
		},
		"acme": {
			"widget": "/git/acme/widget",
		},
	}

	tests := []struct {
		name      string
		org       string
		repo      string
		wantOrg   string
		wantRepo  string
		wantError string // "" for success, "nomatch" or "ambiguous"
	}{
		{
			name:     "exact names",
			org:      "lsimons",
			repo:     "dotfiles",
			wantOrg:  "lsimons",
			wantRepo: "dotfiles",
		},
		{
			name:     "substring match",
			org:      "sim",
			repo:     "dot",
			wantOrg:  "lsimons",
			wantRepo: "dotfiles",
		},
		{
			name:     "case insensitive",
			org:      "ACME",
			repo:     "Widget",
			wantOrg:  "acme",
			wantRepo: "widget",
		},
		{
			name:      "ambiguous repo",
			org:       "lsimons",
			repo:      "s",
			wantError: "ambiguous",
		},
		{
			name:      "no org match",
			org:       "zzz",
			repo:      "widget",
			wantError: "nomatch",
		},
		{
			name:      "no repo match",
			org:       "acme",
			repo:      "zzz",
			wantError: "nomatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := Match(tt.org, tt.repo, workspaces)

			switch tt.wantError {
			case "":
				if err != nil {
					t.Fatalf("Match failed: %v", err)
				}
				if ws.Org != tt.wantOrg || ws.Repo != tt.wantRepo {
					t.Errorf("expected %s/%s, got %s/%s", tt.wantOrg, tt.wantRepo, ws.Org, ws.Repo)
				}
			case "nomatch":
				var nme *NoMatchError
				if !errors.As(err, &nme) {
					t.Fatalf("expected NoMatchError, got %v", err)
				}
			case "ambiguous":
				var ae *AmbiguousError
				if !errors.As(err, &ae) {
					t.Fatalf("expected AmbiguousError, got %v", err)
				}
			}
		})
	}
}

func TestMatch_ExactTieBreak(t *testing.T) {
	// "auto" is contained in both names but matches "auto" exactly.
	workspaces := map[string]map[string]string{
		"lsimons": {
			"auto":       "/git/lsimons/auto",
			"auto-tools": "/git/lsimons/auto-tools",
		},
	}

	ws, err := Match("lsimons", "auto", workspaces)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if ws.Repo != "auto" {
		t.Errorf("expected exact match 'auto', got %q", ws.Repo)
	}

	// Exact tie-break is case-insensitive too.
	ws, err = Match("lsimons", "AUTO", workspaces)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if ws.Repo != "auto" {
		t.Errorf("expected exact match 'auto', got %q", ws.Repo)
	}
}

func TestMatch_NoMatchErrorMentionsOrg(t *testing.T) {
	workspaces := map[string]map[string]string{
		"acme": {"widget": "/git/acme/widget"},
	}

	_, err := Match("acme", "gadget", workspaces)
	var nme *NoMatchError
	if !errors.As(err, &nme) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
	if nme.Org != "acme" {
		t.Errorf("expected org 'acme' in error, got %q", nme.Org)
	}
}

func TestAll_Sorted(t *testing.T) {
	workspaces := map[string]map[string]string{
		"zorg": {"a": "/git/zorg/a"},
		"acme": {"widget": "/git/acme/widget", "gadget": "/git/acme/gadget"},
	}

	all := All(workspaces)
	if len(all) != 3 {
		t.Fatalf("expected 3 workspaces, got %d", len(all))
	}
	if all[0].Repo != "gadget" || all[1].Repo != "widget" || all[2].Org != "zorg" {
		t.Errorf("unexpected order: %v", all)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
}
