package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/journal"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List journaled trades",
	RunE:  runTrades,
}

var (
	tradesStatus string
	tradesPair   string
	tradesSource string
	tradesFrom   string
	tradesTo     string
	tradesLimit  int
)

func init() {
	rootCmd.AddCommand(tradesCmd)

	tradesCmd.Flags().StringVar(&tradesStatus, "status", "", "filter by status (OPEN, WIN, LOSS, BE)")
	tradesCmd.Flags().StringVar(&tradesPair, "pair", "", "filter by pair, e.g. INJ/USDT")
	tradesCmd.Flags().StringVar(&tradesSource, "source", "", "filter by import source (USER_CREATED, CSV_IMPORT)")
	tradesCmd.Flags().StringVar(&tradesFrom, "from", "", "trade date lower bound, YYYY-MM-DD")
	tradesCmd.Flags().StringVar(&tradesTo, "to", "", "trade date upper bound, YYYY-MM-DD")
	tradesCmd.Flags().IntVar(&tradesLimit, "limit", 50, "maximum rows")
}

func runTrades(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	j, err := openJournal(s)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	f := journal.Filters{
		Status: market.Status(tradesStatus),
		Pair:   market.Pair(tradesPair),
		Source: tradesSource,
		Limit:  tradesLimit,
	}
	if tradesFrom != "" {
		if f.Start, err = time.Parse("2006-01-02", tradesFrom); err != nil {
			return fmt.Errorf("from: %w", err)
		}
	}
	if tradesTo != "" {
		if f.End, err = time.Parse("2006-01-02", tradesTo); err != nil {
			return fmt.Errorf("to: %w", err)
		}
	}

	trades, err := j.ListTrades(f)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Printf("%-12s %-6s %-5s %-10s %10s %10s %8s\n",
		"PAIR", "TYPE", "STAT", "DATE", "SIZE", "PNL", "RR")
	for _, t := range trades {
		pnl := "-"
		if t.TotalPnl != nil {
			pnl = fmt.Sprintf("%.2f", *t.TotalPnl)
		}
		rr := "-"
		if t.EffectiveWeightedRR != nil {
			rr = fmt.Sprintf("%.2f", *t.EffectiveWeightedRR)
		} else if len(t.Exits) > 0 && !t.StopEstimated {
			// Live numbers come from the stored legs, not cached columns.
			if out, err := t.Outcome(); err == nil {
				rr = fmt.Sprintf("%.2f", out.EffectiveRR)
			}
		}
		fmt.Printf("%-12s %-6s %-5s %-10s %10.2f %10s %8s\n",
			t.Pair, t.PositionType, t.Status,
			t.TradeDate.Format("2006-01-02"),
			t.PositionSize, pnl, rr)
	}
	fmt.Printf("\n%d trades\n", len(trades))
	return nil
}
