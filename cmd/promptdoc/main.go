// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the promptdoc CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/promptdoc/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds keys and credential paths loaded from .secrets/ at
// startup.
var loadedSecrets *secrets.Secrets

// rootCmd is the base command for the promptdoc CLI.
var rootCmd = &cobra.Command{
	Use:   "promptdoc",
	Short: "Generate text with a chat model and publish it as a formatted document",
	Long: `promptdoc asks a chat model for a settlement agreement or an essay,
turns the plain reply into a styled document (title, headings, clauses,
signatures, bullets, quotes, tables) and publishes it to Google Docs.

Use format to inspect the formatter's output offline, generate to publish
one document, and serve to run the web form and JSON endpoint.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if keys := s.Keys(); len(keys) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./promptdoc.yaml or ~/.config/promptdoc/config.yaml)")
	pf.String("secrets-dir", ".secrets/", "directory of secret files (xai-api-key, google-client-secret.json, google-token.json)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("spacing", "", "line spacing of generated documents: single or double")
	pf.String("styles", "", "YAML file of style overrides")
	pf.String("history-dir", "", "directory holding history.db")

	bindFlags(pf)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("promptdoc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "promptdoc"))
		}
	}

	viper.SetEnvPrefix("PROMPTDOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setupLogging(cmd *cobra.Command) {
	name, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
