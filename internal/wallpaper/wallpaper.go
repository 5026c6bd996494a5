// Package wallpaper generates timestamped desktop backgrounds and sets them
// through System Events.
package wallpaper

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/osa"
)

var (
	backgroundColor = color.RGBA{0x1A, 0x1A, 0x1A, 0xFF}
	textColor       = color.RGBA{0xE8, 0xE8, 0xE8, 0xFF}
)

const (
	titleText     = "lsimons-auto"
	titleScale    = 4
	timeScale     = 2
	leftPadding   = 80
	bottomPadding = 35
	lineGap       = 20
)

// renderText rasterizes text with the built-in monospace bitmap face into a
// tightly sized image.
func renderText(text string, fill color.Color) *image.RGBA {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Height

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fill),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)
	return img
}

// drawScaled blits src onto dst at (x, y), enlarged by an integer factor.
// Nearest neighbor keeps the bitmap face crisp.
func drawScaled(dst *image.RGBA, src *image.RGBA, scale, x, y int) {
	w := src.Bounds().Dx() * scale
	h := src.Bounds().Dy() * scale
	rect := image.Rect(x, y, x+w, y+h)
	xdraw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), xdraw.Over, nil)
}

// Generate renders the background image for the given instant and writes it
// under dir with owner-only permissions. It returns the file path.
func Generate(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backgrounds directory: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, constants.WallpaperWidth, constants.WallpaperHeight))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, xdraw.Src)

	timestamp := now.UTC().Format("2006-01-02 15:04:05 UTC")
	title := renderText(titleText, textColor)
	stamp := renderText(timestamp, textColor)

	// Bottom-left corner: timestamp on the baseline, title above it.
	stampH := stamp.Bounds().Dy() * timeScale
	titleH := title.Bounds().Dy() * titleScale
	stampY := constants.WallpaperHeight - bottomPadding - stampH
	titleY := stampY - lineGap - titleH

	drawScaled(img, title, titleScale, leftPadding, titleY)
	drawScaled(img, stamp, timeScale, leftPadding, stampY)

	name := fmt.Sprintf("%s%s.png", constants.WallpaperFilePrefix, now.UTC().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create background file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to encode background: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return path, nil
}

// SetBackground points every desktop at the image via System Events.
func SetBackground(client osa.Client, imagePath string) error {
	script := fmt.Sprintf(`tell application "System Events"
	tell every desktop
		set picture to "%s"
	end tell
end tell`, osa.Escape(imagePath))

	if _, err := client.Run(script); err != nil {
		return fmt.Errorf("failed to set desktop background: %w", err)
	}
	return nil
}

// Cleanup removes generated backgrounds beyond the keep most recent,
// reporting each removal to out.
func Cleanup(dir string, keep int, out io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	type candidate struct {
		name  string
		mtime time.Time
	}
	var files []candidate
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), constants.WallpaperFilePrefix) || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, candidate{e.Name(), info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].mtime.After(files[j].mtime) })

	for _, old := range files[min(keep, len(files)):] {
		if err := os.Remove(filepath.Join(dir, old.name)); err != nil {
			fmt.Fprintf(out, "Warning: Could not remove %s: %v\n", old.name, err)
			continue
		}
		fmt.Fprintf(out, "Cleaned up old background: %s\n", old.name)
	}
	return nil
}

// Updater orchestrates one background refresh.
type Updater struct {
	Dir    string
	Osa    osa.Client
	Out    io.Writer
	DryRun bool
}

// Update generates a fresh background, sets it unless dry-running, and
// prunes old files.
func (u *Updater) Update() error {
	fmt.Fprintln(u.Out, "Generating desktop background...")
	path, err := Generate(u.Dir, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(u.Out, "Generated background: %s\n", path)

	if u.DryRun {
		fmt.Fprintln(u.Out, "Dry run mode: Desktop background not changed")
	} else {
		if err := SetBackground(u.Osa, path); err != nil {
			return err
		}
		fmt.Fprintf(u.Out, "Desktop background updated: %s\n", path)
	}

	if err := Cleanup(u.Dir, constants.WallpaperKeepCount, u.Out); err != nil {
		return err
	}

	fmt.Fprintln(u.Out, "Desktop background update completed successfully!")
	return nil
}
