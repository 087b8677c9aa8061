package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/bitget"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a BitGet futures CSV export into the journal",
	Long: `Import parses a BitGet order-history CSV, reconstructs partial trade
records (stop loss and leverage are estimated, RR metrics stay empty) and
journals every trade not already present. Re-running the same file is
safe: duplicates are detected by fingerprint and skipped.`,
	RunE: runImport,
}

var importFile string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "path to BitGet CSV export (required)")
	importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	j, err := openJournal(s)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	imp := bitget.Importer{Journal: j, Settings: *s, Log: log}
	res, err := imp.Import(string(content))
	if err != nil {
		return err
	}

	fmt.Printf("Imported:   %d\n", res.Imported)
	fmt.Printf("Duplicates: %d\n", res.Duplicates)
	fmt.Printf("Errors:     %d\n", len(res.Errors))
	for _, e := range res.Errors {
		fmt.Printf("  %v\n", e)
	}
	return nil
}
