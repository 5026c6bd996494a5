//go:build darwin

package desktop

import (
	"os"
	"syscall"
	"time"
)

// birthTime returns the file's creation time, falling back to the change
// time when the stat shape is unexpected.
func birthTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	}
	return info.ModTime()
}
