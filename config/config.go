package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/risk"
)

// Settings holds the trader's risk policy and journal location.
type Settings struct {
	// InitialCapital is the portfolio value position sizing works from.
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	// RiskPercent is the fraction of the portfolio risked per trade
	// (0.02 = 2%), i.e. the definition of 1R.
	RiskPercent float64 `json:"risk_percent" yaml:"risk_percent"`
	// DefaultMinRR is the minimum acceptable weighted reward:risk for a
	// new plan.
	DefaultMinRR float64 `json:"default_min_rr" yaml:"default_min_rr"`
	// DefaultLeverage pre-fills new plans.
	DefaultLeverage int    `json:"default_leverage" yaml:"default_leverage"`
	Currency        string `json:"currency" yaml:"currency"`

	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// JournalConfig locates the SQLite journal file.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Policy returns the risk policy implied by the settings.
func (s *Settings) Policy() risk.Policy {
	return risk.Policy{
		Portfolio:    s.InitialCapital,
		RiskFraction: risk.Fraction01(s.RiskPercent),
		MinRR:        s.DefaultMinRR,
	}
}

// LoadFromFile loads settings from a file (YAML or JSON).
func LoadFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	s := &Settings{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, s); err != nil {
		if jsonErr := json.Unmarshal(data, s); jsonErr != nil {
			return nil, fmt.Errorf("parse settings (tried YAML and JSON): %w", err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// SaveToFile writes settings to a file, YAML for .yaml/.yml extensions and
// JSON otherwise.
func (s *Settings) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	if s.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive")
	}
	if s.RiskPercent <= 0 || s.RiskPercent > 1 {
		return fmt.Errorf("risk_percent must be a fraction between 0 and 1")
	}
	if s.DefaultMinRR < 0 {
		return fmt.Errorf("default_min_rr must not be negative")
	}
	if s.DefaultLeverage < 1 {
		return fmt.Errorf("default_leverage must be at least 1")
	}
	if s.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if s.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	return nil
}

// Default returns settings with sensible defaults.
func Default() *Settings {
	return &Settings{
		InitialCapital:  10_000,
		RiskPercent:     0.02,
		DefaultMinRR:    1.5,
		DefaultLeverage: 10,
		Currency:        "USD",
		Journal: JournalConfig{
			DBPath: "./journal.sqlite",
		},
	}
}
