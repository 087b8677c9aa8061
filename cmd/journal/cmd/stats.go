package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/journal"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Dashboard statistics over closed trades",
	RunE:  runStats,
}

var (
	statsRange string
	statsCurve bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsRange, "range", "", "window: today, week, month, 3months, 6months, year (default all time)")
	statsCmd.Flags().BoolVar(&statsCurve, "curve", false, "print the daily equity curve instead")
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	j, err := openJournal(s)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	since := journal.SinceFilter(statsRange, time.Now())

	if statsCurve {
		curve, err := j.EquityCurve(since)
		if err != nil {
			return fmt.Errorf("equity curve: %w", err)
		}
		fmt.Printf("%-12s %10s %12s %6s\n", "DATE", "DAILY", "CUMULATIVE", "TRADES")
		for _, p := range curve {
			fmt.Printf("%-12s %10.2f %12.2f %6d\n", p.Date, p.DailyPnl, p.CumulativePnl, p.TradeCount)
		}
		return nil
	}

	st, err := j.Stats(since)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	pf := fmt.Sprintf("%.2f", st.ProfitFactor)
	if math.IsInf(st.ProfitFactor, 1) {
		pf = "inf"
	}

	fmt.Printf("Trades:        %d (open: %d)\n", st.TotalTrades, st.OpenTrades)
	fmt.Printf("W / L / BE:    %d / %d / %d\n", st.Wins, st.Losses, st.Breakevens)
	fmt.Printf("Win rate:      %.1f%%\n", st.WinRate)
	fmt.Printf("Total P&L:     $%.2f\n", st.TotalPnl)
	fmt.Printf("Gross profit:  $%.2f\n", st.GrossProfit)
	fmt.Printf("Gross loss:    $%.2f\n", st.GrossLoss)
	fmt.Printf("Profit factor: %s\n", pf)
	fmt.Printf("Avg eff. RR:   %.2f\n", st.AvgRR)
	fmt.Printf("Best / worst:  $%.2f / $%.2f\n", st.BestTrade, st.WorstTrade)
	return nil
}
