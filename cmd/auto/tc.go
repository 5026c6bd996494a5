package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/logging"
	"github.com/lsimons/auto/internal/osa"
	"github.com/lsimons/auto/internal/tcouncil"
)

var (
	tcBaseDir string
	tcDryRun  bool
)

var tcCmd = &cobra.Command{
	Use:   "tc",
	Short: "Manage Technology Council meeting documents",
}

func tcCouncil() (*tcouncil.Council, error) {
	base := tcouncil.BaseDir(tcBaseDir)
	if _, err := os.Stat(base); err != nil {
		return nil, fmt.Errorf("base directory not found: %s", base)
	}
	return tcouncil.New(base, osa.New(), os.Stdout, tcDryRun), nil
}

var tcPrepMeetingCmd = &cobra.Command{
	Use:   "prep-meeting",
	Short: "Create next Monday's minutes from the template and open them in Word",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("tc prep-meeting")

		c, err := tcCouncil()
		if err != nil {
			return err
		}
		return c.PrepMeeting()
	},
}

var tcGenPDFCmd = &cobra.Command{
	Use:   "gen-pdf",
	Short: "Convert minutes documents without a PDF counterpart",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("tc gen-pdf")

		c, err := tcCouncil()
		if err != nil {
			return err
		}
		return c.GenPDF()
	},
}

var tcCreateDirsCmd = &cobra.Command{
	Use:   "create-dirs",
	Short: "Create meeting directories for every Monday of next year",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("tc create-dirs")

		c, err := tcCouncil()
		if err != nil {
			return err
		}
		return c.CreateDirs()
	},
}

func init() {
	tcCmd.PersistentFlags().StringVar(&tcBaseDir, "base-dir", "",
		"Override the Technology Council base directory (or set TC_BASE_DIR)")
	tcCmd.PersistentFlags().BoolVar(&tcDryRun, "dry-run", false,
		"Show what would be done without touching any files")

	tcCmd.AddCommand(tcPrepMeetingCmd)
	tcCmd.AddCommand(tcGenPDFCmd)
	tcCmd.AddCommand(tcCreateDirsCmd)
}
