package main

import (
	"github.com/spf13/cobra"
)

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Check your remaining API credits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := creds.Resolve(cmd.Context())
		if err != nil {
			return err
		}
		return finish(service.Credits(cmd.Context(), key))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate your API key (health check)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := creds.Resolve(cmd.Context())
		if err != nil {
			return err
		}
		return finish(service.Health(cmd.Context(), key))
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [api-key]",
	Short: "Save an API key to the config file",
	Long: `Save an API key to the config file. Without an argument the key is read
from the terminal. Run "sgai validate" afterwards to check it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if err := creds.Store(args[0]); err != nil {
			return err
		}
		status.Notice("API key saved to " + settingsPath)
		return nil
	}

	// Resolve prompts and persists when no key is configured yet
	if _, err := creds.Resolve(cmd.Context()); err != nil {
		return err
	}
	status.Notice("API key available (source: " + string(creds.Source()) + ")")
	return nil
}
