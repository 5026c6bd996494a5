// Package tcouncil manages Technology Council meeting files: weekly minutes
// documents, their PDF renditions and the per-Monday directory layout.
package tcouncil

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/logging"
	"github.com/lsimons/auto/internal/osa"
)

// DefaultBaseDir is the shared meeting folder, relative to the home
// directory.
const DefaultBaseDir = "Schuberg Philis/Engineering - Documents/\U0001F4C5 Meetings/Technology Council"

// templateName is the minutes template at the base directory root.
const templateName = "YYYYMMDD Minutes Technology Council.docx"

// BaseDir resolves the meeting directory: explicit flag, then the
// TC_BASE_DIR environment variable, then the default.
func BaseDir(flag string) string {
	if flag != "" {
		return expand(flag)
	}
	if env := os.Getenv("TC_BASE_DIR"); env != "" {
		return expand(env)
	}
	return filepath.Join(constants.HomeDir(), DefaultBaseDir)
}

func expand(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(constants.HomeDir(), path[2:])
	}
	return path
}

// Council runs the meeting-management subcommands against one base
// directory.
type Council struct {
	BaseDir string
	Osa     osa.Client
	Out     io.Writer
	DryRun  bool

	// now is replaced in tests.
	now func() time.Time
}

// New creates a Council for the base directory.
func New(baseDir string, client osa.Client, out io.Writer, dryRun bool) *Council {
	return &Council{BaseDir: baseDir, Osa: client, Out: out, DryRun: dryRun, now: time.Now}
}

func minutesName(dateStr string) string {
	return dateStr + " Minutes Technology Council.docx"
}

// findMinutes returns the minutes document for the date inside dir, or ""
// when absent.
func findMinutes(dir, dateStr string) string {
	path := filepath.Join(dir, minutesName(dateStr))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// meetingDir is the per-Monday directory <base>/<year>/<yyyymmdd>.
func (c *Council) meetingDir(monday time.Time) string {
	return filepath.Join(c.BaseDir, fmt.Sprintf("%d", monday.Year()), monday.Format(dateLayout))
}

// PrepMeeting sets up the upcoming Monday's meeting: directory, minutes
// document from the template, and both the current and previous documents
// opened in Word.
func (c *Council) PrepMeeting() error {
	fmt.Fprintln(c.Out, "Technology Council Meeting Preparation")
	fmt.Fprintln(c.Out, strings.Repeat("=", 50))

	template := filepath.Join(c.BaseDir, templateName)
	if _, err := os.Stat(template); err != nil {
		return fmt.Errorf("template file not found: %s", template)
	}

	monday := NextMonday(c.now())
	dateStr := monday.Format(dateLayout)
	dir := c.meetingDir(monday)

	fmt.Fprintf(c.Out, "Current Monday: %s (%s)\n", monday.Format("2006-01-02"), dateStr)

	if c.DryRun {
		fmt.Fprintf(c.Out, "Would create directory: %s\n", dir)
	} else {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create meeting directory: %w", err)
		}
		fmt.Fprintf(c.Out, "Meeting directory: %s\n", dir)
	}

	docx := findMinutes(dir, dateStr)
	if docx == "" {
		target := filepath.Join(dir, minutesName(dateStr))
		if c.DryRun {
			fmt.Fprintf(c.Out, "Would copy template to: %s\n", target)
			docx = target
		} else {
			fmt.Fprintln(c.Out, "No existing meeting document found, creating new one from template...")
			if err := copyFile(template, target); err != nil {
				return fmt.Errorf("error copying template file: %w", err)
			}
			fmt.Fprintf(c.Out, "Created new meeting document: %s\n", target)
			docx = target
		}
	} else {
		fmt.Fprintf(c.Out, "Found existing meeting document: %s\n", docx)
	}

	if !c.DryRun {
		fmt.Fprintln(c.Out, "\nOpening current meeting document...")
		if !c.openInWord(docx) {
			fmt.Fprintln(c.Out, "Warning: Could not open current meeting document in Word")
		}
	}

	fmt.Fprintln(c.Out, "\n"+strings.Repeat("=", 50))

	previous := c.findPreviousMinutes(monday)
	if previous == "" {
		fmt.Fprintln(c.Out, "No previous meeting documents found to open for reference")
	} else if !c.DryRun {
		fmt.Fprintln(c.Out, "Opening previous meeting document...")
		if !c.openInWord(previous) {
			fmt.Fprintln(c.Out, "Warning: Could not open previous meeting document in Word")
		}
	}

	fmt.Fprintln(c.Out, "\nMeeting preparation complete!")
	return nil
}

// findPreviousMinutes looks for last week's minutes, then walks back through
// the rest of the current year week by week.
func (c *Council) findPreviousMinutes(monday time.Time) string {
	prev := PreviousMonday(monday)
	prevStr := prev.Format(dateLayout)
	prevDir := c.meetingDir(prev)

	if _, err := os.Stat(prevDir); err == nil {
		if docx := findMinutes(prevDir, prevStr); docx != "" {
			fmt.Fprintf(c.Out, "Found previous meeting document: %s\n", docx)
			return docx
		}
		fmt.Fprintf(c.Out, "Previous meeting directory exists but no .docx file: %s\n", prevDir)
	} else {
		fmt.Fprintf(c.Out, "Previous meeting directory does not exist: %s\n", prevDir)
	}

	fmt.Fprintln(c.Out, "Searching for most recent meeting document in current year...")
	year := monday.Year()
	for check := PreviousMonday(prev); check.Year() == year; check = PreviousMonday(check) {
		if docx := findMinutes(c.meetingDir(check), check.Format(dateLayout)); docx != "" {
			fmt.Fprintf(c.Out, "Found most recent meeting document: %s\n", docx)
			return docx
		}
	}
	fmt.Fprintf(c.Out, "No previous meeting documents found in %d\n", year)
	return ""
}

// openInWord opens a document in Microsoft Word, falling back to open -a
// when AppleScript fails.
func (c *Council) openInWord(path string) bool {
	script := fmt.Sprintf(`tell application "Microsoft Word"
	activate
	open POSIX file "%s"
end tell`, osa.Escape(path))

	_, err := c.Osa.Run(script)
	if err == nil {
		fmt.Fprintf(c.Out, "Opened document in Word: %s\n", path)
		return true
	}
	logging.Debug("word applescript failed: %v", err)

	cmd := exec.Command("open", "-a", "Microsoft Word", path)
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(c.Out, "Fallback method also failed: %v\n", err)
		return false
	}
	fmt.Fprintf(c.Out, "Opened document using fallback method: %s\n", path)
	return true
}

// GenPDF converts every current-year minutes document that lacks a PDF
// sibling, driving Word through AppleScript.
func (c *Council) GenPDF() error {
	yearDir := filepath.Join(c.BaseDir, fmt.Sprintf("%d", c.now().Year()))
	fmt.Fprintf(c.Out, "Scanning directory: %s\n", yearDir)

	pending, err := findDocxWithoutPDF(yearDir)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(c.Out, "No .docx files found that need PDF conversion.")
		return nil
	}
	fmt.Fprintf(c.Out, "Found %d .docx file(s) that need PDF conversion.\n", len(pending))

	if c.DryRun {
		fmt.Fprintln(c.Out, "\nWould execute the following conversions:")
		for _, docx := range pending {
			fmt.Fprintf(c.Out, "  %s -> %s\n", docx, pdfSibling(docx))
		}
		return nil
	}

	fmt.Fprintln(c.Out, "Executing commands...")
	for _, docx := range pending {
		fmt.Fprintf(c.Out, "Converting %s...\n", docx)
		if _, err := c.Osa.Run(pdfConversionScript(docx)); err != nil {
			fmt.Fprintf(c.Out, "  Conversion failed: %v\n", err)
			continue
		}
		fmt.Fprintln(c.Out, "  Command executed successfully")
	}
	return nil
}

func pdfSibling(docx string) string {
	return strings.TrimSuffix(docx, filepath.Ext(docx)) + ".pdf"
}

// findDocxWithoutPDF scans the year directory's subdirectories for .docx
// files lacking a .pdf sibling.
func findDocxWithoutPDF(yearDir string) ([]string, error) {
	entries, err := os.ReadDir(yearDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory %q does not exist", yearDir)
		}
		return nil, err
	}

	var pending []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(yearDir, e.Name())
		docxFiles, err := filepath.Glob(filepath.Join(sub, "*.docx"))
		if err != nil {
			return nil, err
		}
		for _, docx := range docxFiles {
			if _, err := os.Stat(pdfSibling(docx)); os.IsNotExist(err) {
				pending = append(pending, docx)
			}
		}
	}
	return pending, nil
}

// pdfConversionScript drives Word: open, refresh fields, save as PDF.
func pdfConversionScript(docx string) string {
	return fmt.Sprintf(`tell application "Microsoft Word"
	activate
	open POSIX file "%s"
	tell active document
		set fieldList to fields
		repeat with ef in fieldList
			update field ef
		end repeat
		save as it file name "%s" file format format PDF
		close saving no
	end tell
end tell`, osa.Escape(docx), osa.Escape(pdfSibling(docx)))
}

// CreateDirs creates a directory for every Monday of next year, skipping
// Mondays that already have a directory (even a renamed one sharing the
// date prefix).
func (c *Council) CreateDirs() error {
	nextYear := c.now().Year() + 1
	fmt.Fprintf(c.Out, "Working in: %s\n", c.BaseDir)

	yearDir := filepath.Join(c.BaseDir, fmt.Sprintf("%d", nextYear))
	if _, err := os.Stat(yearDir); os.IsNotExist(err) {
		if c.DryRun {
			fmt.Fprintf(c.Out, "Would create directory for year %d\n", nextYear)
		} else {
			if err := os.MkdirAll(yearDir, 0755); err != nil {
				return err
			}
			fmt.Fprintf(c.Out, "Created directory for year %d\n", nextYear)
		}
	}

	count := 0
	for _, monday := range MondaysOfYear(nextYear) {
		name := monday.Format(dateLayout)

		if existing := prefixedEntry(yearDir, name); existing != "" {
			fmt.Fprintf(c.Out, "Skipping %s (found %s)\n", name, existing)
			continue
		}

		if c.DryRun {
			fmt.Fprintf(c.Out, "Would create directory: %s\n", name)
		} else {
			if err := os.Mkdir(filepath.Join(yearDir, name), 0755); err != nil && !os.IsExist(err) {
				return err
			}
			fmt.Fprintf(c.Out, "Created directory: %s\n", name)
		}
		count++
	}

	verb := "Created"
	if c.DryRun {
		verb = "Would create"
	}
	fmt.Fprintf(c.Out, "%s %d directories for Mondays of %d.\n", verb, count, nextYear)
	return nil
}

// prefixedEntry returns the first entry in dir whose name starts with
// prefix, or "".
func prefixedEntry(dir, prefix string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			return e.Name()
		}
	}
	return ""
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
