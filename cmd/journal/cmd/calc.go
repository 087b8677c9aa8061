package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/risk"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute position sizing and RR for a planned setup",
	Long: `Calc sizes a trade from the configured risk policy.

Entries and take-profits are price:percent legs and may repeat:

  journal calc --entry 100:60 --entry 110:40 --stop 90 \
      --tp 120:50 --tp 140:50 --leverage 10`,
	RunE: runCalc,
}

var (
	calcPortfolio float64
	calcRisk      float64
	calcMinRR     float64
	calcEntries   []string
	calcEntry     float64
	calcStop      float64
	calcTPs       []string
	calcLeverage  float64
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().Float64Var(&calcPortfolio, "portfolio", 0, "portfolio value (default from settings)")
	calcCmd.Flags().Float64Var(&calcRisk, "risk", 0, "risk fraction per trade, e.g. 0.02 (default from settings)")
	calcCmd.Flags().Float64Var(&calcMinRR, "min-rr", 0, "minimum acceptable weighted RR (default from settings)")
	calcCmd.Flags().StringArrayVar(&calcEntries, "entry", nil, "entry leg price:percent (repeatable)")
	calcCmd.Flags().Float64Var(&calcEntry, "entry-price", 0, "single entry price (instead of --entry legs)")
	calcCmd.Flags().Float64Var(&calcStop, "stop", 0, "stop-loss price (required)")
	calcCmd.Flags().StringArrayVar(&calcTPs, "tp", nil, "take-profit leg price:percent (repeatable, required)")
	calcCmd.Flags().Float64VarP(&calcLeverage, "leverage", "l", 0, "leverage (default from settings)")

	calcCmd.MarkFlagRequired("stop")
	calcCmd.MarkFlagRequired("tp")
}

func runCalc(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	pol := s.Policy()
	if calcPortfolio > 0 {
		pol.Portfolio = calcPortfolio
	}
	if calcRisk > 0 {
		pol.RiskFraction = risk.Fraction01(calcRisk)
	}
	if calcMinRR > 0 {
		pol.MinRR = calcMinRR
	}
	if calcLeverage == 0 {
		calcLeverage = float64(s.DefaultLeverage)
	}

	entries, err := parseLegs(calcEntries)
	if err != nil {
		return fmt.Errorf("entry: %w", err)
	}
	tpLegs, err := parseLegs(calcTPs)
	if err != nil {
		return fmt.Errorf("tp: %w", err)
	}
	tps := make([]risk.TakeProfit, len(tpLegs))
	for i, leg := range tpLegs {
		tps[i] = risk.TakeProfit{Price: leg.Price, Percent: leg.Percent}
	}

	d := risk.Evaluate(pol, risk.PlanInput{
		Entries:     entries,
		EntryPrice:  calcEntry,
		StopLoss:    calcStop,
		TakeProfits: tps,
		Leverage:    calcLeverage,
	})

	m := d.Metrics
	fmt.Printf("Direction:      %s\n", m.Type)
	fmt.Printf("Weighted entry: %.8g\n", m.WeightedEntry)
	fmt.Printf("1R:             $%.2f\n", m.OneR)
	fmt.Printf("Stop distance:  %.8g (%.2f%%)\n", m.StopDistanceUSD, m.StopDistancePct*100)
	if m.MaxLeverageOK {
		fmt.Printf("Max leverage:   %dx\n", m.MaxLeverage)
	}
	fmt.Printf("Margin:         $%.2f\n", m.Margin)
	fmt.Printf("Position size:  $%.2f\n", m.PositionSize)
	fmt.Printf("Quantity:       %.8g\n", m.Quantity)
	for i, tp := range m.TakeProfits {
		fmt.Printf("TP %d:           %.8g x%.0f%%  RR %.2f  profit $%.2f\n",
			i+1, tp.Price, float64(tp.Percent), tp.RR, tp.PotentialProfit)
	}
	fmt.Printf("Weighted RR:    %.2f\n", m.WeightedRR)
	fmt.Printf("Potential:      $%.2f\n", m.PotentialProfit)

	for _, w := range d.Warnings {
		fmt.Printf("warning [%s]: %s\n", w.Code, w.Msg)
	}
	if !d.Allowed {
		for _, v := range d.Violations {
			fmt.Printf("blocked [%s]: %s\n", v.Code, v.Msg)
		}
		return fmt.Errorf("setup not submittable")
	}
	return nil
}

// parseLegs converts repeated "price:percent" flags into allocations.
func parseLegs(raw []string) ([]risk.Allocation, error) {
	var legs []risk.Allocation
	for _, arg := range raw {
		price, percent, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("%q: want price:percent", arg)
		}
		p, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: bad price: %w", arg, err)
		}
		pct, err := strconv.ParseFloat(percent, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: bad percent: %w", arg, err)
		}
		legs = append(legs, risk.Allocation{Price: p, Percent: risk.Percent100(pct)})
	}
	return legs, nil
}
