package agent

import (
	"fmt"

	"github.com/lsimons/auto/internal/tmux"
)

// BuildLayout splits the session's window into the fixed arrangement for the
// given subagent count and returns the new pane IDs in subagent order
// (001, 002, ...). mainPaneID is the pane created with the session; startDirs
// holds one working directory per subagent.
//
// Layouts:
//
//	1: main | 001
//	2: main | 001 over 002
//	3: main | 001 / 002 / 003 stacked on the right
//	4: main | 001 over 002 | 003 over 004
func BuildLayout(client tmux.Client, mainPaneID string, startDirs []string) ([]string, error) {
	n := len(startDirs)
	if n < 1 || n > 4 {
		return nil, fmt.Errorf("unsupported subagent count: %d", n)
	}

	split := func(target, dir string, horizontal bool) (string, error) {
		return client.SplitPane(tmux.SplitOpts{
			Target:     target,
			Horizontal: horizontal,
			StartDir:   dir,
		})
	}

	panes := make([]string, n)

	// Every layout starts with a horizontal split off the main pane.
	first, err := split(mainPaneID, startDirs[0], true)
	if err != nil {
		return nil, fmt.Errorf("failed to split pane: %w", err)
	}
	panes[0] = first

	switch n {
	case 1:
		// Done.
	case 2, 3:
		// Stack the remaining panes in the right column.
		prev := first
		for i := 1; i < n; i++ {
			id, err := split(prev, startDirs[i], false)
			if err != nil {
				return nil, fmt.Errorf("failed to split pane: %w", err)
			}
			panes[i] = id
			prev = id
		}
	case 4:
		// Third column first, then stack each of the two right columns.
		third, err := split(first, startDirs[2], true)
		if err != nil {
			return nil, fmt.Errorf("failed to split pane: %w", err)
		}
		panes[2] = third

		second, err := split(first, startDirs[1], false)
		if err != nil {
			return nil, fmt.Errorf("failed to split pane: %w", err)
		}
		panes[1] = second

		fourth, err := split(third, startDirs[3], false)
		if err != nil {
			return nil, fmt.Errorf("failed to split pane: %w", err)
		}
		panes[3] = fourth
	}

	if err := client.SelectPane(mainPaneID); err != nil {
		return nil, fmt.Errorf("failed to focus main pane: %w", err)
	}

	return panes, nil
}
