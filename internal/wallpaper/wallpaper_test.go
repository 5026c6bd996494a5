package wallpaper

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/lsimons/auto/internal/constants"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 26, 7, 30, 0, 0, time.UTC)

	path, err := Generate(dir, now)
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(path) != "background_20260826_073000.png" {
		t.Errorf("filename = %s", filepath.Base(path))
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && fi.Mode().Perm() != 0600 {
		t.Errorf("perm = %o, want 0600", fi.Mode().Perm())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != constants.WallpaperWidth || b.Dy() != constants.WallpaperHeight {
		t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), constants.WallpaperWidth, constants.WallpaperHeight)
	}

	// The text region must differ from the background fill.
	r0, g0, b0, _ := img.At(0, 0).RGBA()
	if r0>>8 != 0x1A || g0>>8 != 0x1A || b0>>8 != 0x1A {
		t.Errorf("corner pixel = %x %x %x, want background fill", r0>>8, g0>>8, b0>>8)
	}
	lit := false
	for y := constants.WallpaperHeight - 200; y < constants.WallpaperHeight && !lit; y++ {
		for x := leftPadding; x < leftPadding+400; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r>>8 > 0x80 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("no rendered text found in the bottom-left region")
	}
}

func TestRenderTextWidthTracksLength(t *testing.T) {
	short := renderText("hi", textColor)
	long := renderText("hello there", textColor)
	if long.Bounds().Dx() <= short.Bounds().Dx() {
		t.Errorf("width %d should exceed %d", long.Bounds().Dx(), short.Bounds().Dx())
	}
}

func TestCleanupKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("background_2026082%d_000000.png", i)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("png"), 0600); err != nil {
			t.Fatal(err)
		}
		mtime := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}
	}
	// A non-generated file must never be pruned.
	keeper := filepath.Join(dir, "unrelated.png")
	if err := os.WriteFile(keeper, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	if err := Cleanup(dir, 5, out); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var remaining []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "background_") {
			remaining = append(remaining, e.Name())
		}
	}
	if len(remaining) != 5 {
		t.Errorf("got %d backgrounds after cleanup, want 5: %v", len(remaining), remaining)
	}
	// The oldest three were removed.
	for _, name := range remaining {
		for i := 0; i < 3; i++ {
			if name == fmt.Sprintf("background_2026082%d_000000.png", i) {
				t.Errorf("old file %s survived cleanup", name)
			}
		}
	}
	if _, err := os.Stat(keeper); err != nil {
		t.Error("unrelated file was pruned")
	}
}

func TestCleanupMissingDir(t *testing.T) {
	if err := Cleanup(filepath.Join(t.TempDir(), "nope"), 5, &bytes.Buffer{}); err != nil {
		t.Errorf("missing dir should be a no-op, got %v", err)
	}
}
