package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journaled trades to CSV",
	RunE:  runExport,
}

var exportOut string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	j, err := openJournal(s)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	trades, err := j.ListTrades(journal.Filters{})
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := journal.ExportCSV(out, trades); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if exportOut != "" {
		fmt.Printf("exported %d trades to %s\n", len(trades), exportOut)
	}
	return nil
}
