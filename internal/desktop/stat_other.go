//go:build !darwin

package desktop

import (
	"os"
	"time"
)

// birthTime approximates creation time with the modification time on
// platforms that do not expose a birth time.
func birthTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
