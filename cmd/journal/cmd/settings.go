package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Generate or validate a settings file",
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default settings file",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Default()
		if err := s.SaveToFile(settingsOut); err != nil {
			return err
		}
		fmt.Printf("wrote default settings to %s\n", settingsOut)
		return nil
	},
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the settings file given via --config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			return fmt.Errorf("--config is required")
		}
		if _, err := config.LoadFromFile(cfgPath); err != nil {
			return err
		}
		fmt.Printf("%s is valid\n", cfgPath)
		return nil
	},
}

var settingsOut string

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsInitCmd, settingsValidateCmd)

	settingsInitCmd.Flags().StringVarP(&settingsOut, "output", "o", "./journal.yaml", "output path")
}
