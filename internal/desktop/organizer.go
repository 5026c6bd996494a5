// Package desktop files everything on the desktop into a date-based
// year/month/day hierarchy.
package desktop

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/lsimons/auto/internal/logging"
)

// maxImageSize is the compression target for screenshot images.
const maxImageSize = 1024 * 1024

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
}

// Organizer moves desktop items into YYYY/MM/DD directories keyed on each
// item's creation time.
type Organizer struct {
	Desktop string
	Out     io.Writer
	DryRun  bool
}

// Items returns the desktop entries to organize. Hidden entries and existing
// four-digit year directories stay put.
func (o *Organizer) Items() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(o.Desktop)
	if err != nil {
		return nil, err
	}
	var items []os.DirEntry
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() && isYearDir(name) {
			continue
		}
		items = append(items, e)
	}
	return items, nil
}

func isYearDir(name string) bool {
	if len(name) != 4 {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Organize processes every item. Per-item failures are reported and counted
// but do not stop the run.
func (o *Organizer) Organize() error {
	if _, err := os.Stat(o.Desktop); err != nil {
		fmt.Fprintln(o.Out, "Desktop directory not found")
		return nil
	}

	items, err := o.Items()
	if err != nil {
		return fmt.Errorf("failed to read desktop: %w", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(o.Out, "No items found to organize on desktop")
		return nil
	}

	fmt.Fprintf(o.Out, "Found %d items to organize\n", len(items))
	if o.DryRun {
		fmt.Fprintf(o.Out, "\nDRY RUN - Showing what would be organized:\n\n")
	}

	organized, errCount := 0, 0
	for _, item := range items {
		if err := o.organizeItem(item); err != nil {
			fmt.Fprintf(o.Out, "Error organizing %s: %v\n", item.Name(), err)
			errCount++
			continue
		}
		organized++
	}

	if o.DryRun {
		fmt.Fprintf(o.Out, "\nDry run completed: %d items would be organized\n", organized)
	} else {
		fmt.Fprintf(o.Out, "\nOrganization completed: %d items organized, %d errors\n", organized, errCount)
	}
	return nil
}

func (o *Organizer) organizeItem(item os.DirEntry) error {
	path := filepath.Join(o.Desktop, item.Name())
	info, err := item.Info()
	if err != nil {
		return err
	}

	targetDir, err := o.ensureDateDir(birthTime(info))
	if err != nil {
		return err
	}

	if item.IsDir() {
		return o.moveDir(path, targetDir)
	}
	return o.moveFile(path, info, targetDir)
}

// ensureDateDir creates the YYYY/MM/DD directory for a timestamp. Newly
// created levels get their own timestamps set: Jan 1 for the year, the first
// of the month for the month, the day itself for the day.
func (o *Organizer) ensureDateDir(t time.Time) (string, error) {
	levels := []struct {
		name  string
		stamp time.Time
	}{
		{fmt.Sprintf("%04d", t.Year()), time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())},
		{fmt.Sprintf("%02d", t.Month()), time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())},
		{fmt.Sprintf("%02d", t.Day()), t},
	}

	// Create all levels first; stamping a level before creating its child
	// would have the child reset the parent's mtime.
	type created struct {
		dir   string
		stamp time.Time
	}
	var fresh []created

	dir := o.Desktop
	for _, level := range levels {
		dir = filepath.Join(dir, level.name)
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		if err := os.Mkdir(dir, 0755); err != nil {
			return "", err
		}
		fresh = append(fresh, created{dir, level.stamp})
	}
	for _, c := range fresh {
		setDirTimestamps(c.dir, c.stamp)
	}
	return dir, nil
}

// setDirTimestamps stamps a directory with the given time. Birth time is
// best-effort via touch -t and only matters on macOS.
func setDirTimestamps(dir string, t time.Time) {
	if err := os.Chtimes(dir, t, t); err != nil {
		logging.Debug("chtimes %s: %v", dir, err)
	}
	cmd := exec.Command("touch", "-t", t.Format("200601021504.05"), dir)
	if err := cmd.Run(); err != nil {
		logging.Debug("touch -t %s: %v", dir, err)
	}
}

// relDisplay renders a target path relative to the desktop for output.
func (o *Organizer) relDisplay(path string) string {
	if rel, err := filepath.Rel(o.Desktop, path); err == nil {
		return rel
	}
	return filepath.Base(path)
}

func (o *Organizer) moveFile(path string, info os.FileInfo, targetDir string) error {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	switch {
	case isCleanShot(name, ext, info.Size()):
		dest := filepath.Join(targetDir, stem+"_compressed.jpg")
		if o.DryRun {
			fmt.Fprintf(o.Out, "Would compress and move: %s -> %s\n", name, o.relDisplay(dest))
			return nil
		}
		if err := compressImageFile(path, dest); err != nil {
			fmt.Fprintf(o.Out, "Warning: Could not compress image %s: %v\n", name, err)
			return o.plainMove(path, targetDir, "Moved")
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		fmt.Fprintf(o.Out, "Compressed and moved: %s -> %s\n", name, filepath.Base(dest))
		return nil

	case ext == ".txt":
		dest := conflictFree(filepath.Join(targetDir, stem+".md"))
		if o.DryRun {
			fmt.Fprintf(o.Out, "Would convert and move: %s -> %s\n", name, o.relDisplay(dest))
			return nil
		}
		if err := os.Rename(path, dest); err != nil {
			return err
		}
		fmt.Fprintf(o.Out, "Converted and moved: %s -> %s\n", name, filepath.Base(dest))
		return nil

	default:
		if o.DryRun {
			fmt.Fprintf(o.Out, "Would move: %s -> %s\n", name, o.relDisplay(filepath.Join(targetDir, name)))
			return nil
		}
		return o.plainMove(path, targetDir, "Moved")
	}
}

func (o *Organizer) plainMove(path, targetDir, verb string) error {
	name := filepath.Base(path)
	dest := conflictFree(filepath.Join(targetDir, name))
	if err := os.Rename(path, dest); err != nil {
		return err
	}
	fmt.Fprintf(o.Out, "%s: %s -> %s\n", verb, name, o.relDisplay(dest))
	return nil
}

func (o *Organizer) moveDir(path, targetDir string) error {
	name := filepath.Base(path)
	if o.DryRun {
		fmt.Fprintf(o.Out, "Would move directory: %s -> %s\n", name, o.relDisplay(filepath.Join(targetDir, name)))
		return nil
	}
	dest := conflictFree(filepath.Join(targetDir, name))
	if err := os.Rename(path, dest); err != nil {
		return err
	}
	fmt.Fprintf(o.Out, "Moved directory: %s -> %s\n", name, o.relDisplay(dest))
	return nil
}

// conflictFree appends _1, _2, ... before the extension until the path does
// not exist.
func conflictFree(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// isCleanShot reports whether the file is a large screenshot worth
// recompressing.
func isCleanShot(name, ext string, size int64) bool {
	return strings.HasPrefix(name, "CleanShot") && imageExts[ext] && size > maxImageSize
}

// compressImageFile re-encodes an image as JPEG at the highest quality that
// fits under the size target, searching quality levels 10 through 95.
func compressImageFile(src, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return err
	}

	// Flatten alpha onto white before JPEG encoding.
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)

	lo, hi := 10, 95
	var best []byte
	for lo <= hi {
		mid := (lo + hi) / 2
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: mid}); err != nil {
			return err
		}
		if buf.Len() <= maxImageSize {
			best = buf.Bytes()
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best == nil {
		// Even the lowest quality overshoots: take it anyway.
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: 10}); err != nil {
			return err
		}
		best = buf.Bytes()
	}

	return os.WriteFile(dest, best, 0644)
}
