// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/promptdoc/internal/chat"
	"github.com/pdiddy/promptdoc/internal/formatter"
	"github.com/pdiddy/promptdoc/internal/gdocs"
	"github.com/pdiddy/promptdoc/internal/history"
	"github.com/pdiddy/promptdoc/internal/metrics"
	"github.com/pdiddy/promptdoc/internal/publish"
	"github.com/pdiddy/promptdoc/internal/secrets"
	"github.com/pdiddy/promptdoc/pkg/types"
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"spacing":     "format.spacing",
	"styles":      "format.styles_file",
	"history-dir": "history.dir",
	"api-key":     "ai.api_key",
	"model":       "ai.model",
	"base-url":    "ai.base_url",
	"max-tokens":  "ai.max_tokens",
	"addr":        "server.addr",
}

// bindFlags binds every flag of fs that has a config key.
func bindFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if key := flagKeys[f.Name]; key != "" {
			_ = viper.BindPFlag(key, f)
		}
	})
}

func setDefaults() {
	viper.SetDefault("ai.base_url", chat.DefaultBaseURL)
	viper.SetDefault("ai.model", chat.DefaultModel)
	viper.SetDefault("ai.max_tokens", chat.DefaultMaxTokens)
	viper.SetDefault("ai.max_retries", 5)
	viper.SetDefault("ai.timeout", 2*time.Minute)
	viper.SetDefault("format.spacing", string(formatter.SpacingSingle))
	viper.SetDefault("docs.share", true)
	viper.SetDefault("history.dir", "history")
	viper.SetDefault("server.addr", ":5050")
}

// loadConfig assembles the configuration from flags, environment, config
// file and the secrets directory, in that order of precedence.
func loadConfig() types.Config {
	return types.Config{
		AI: types.AIConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("ai.timeout"),
				UserAgent: "promptdoc/" + version,
			},
			BaseURL:    viper.GetString("ai.base_url"),
			Model:      viper.GetString("ai.model"),
			APIKey:     loadedSecrets.Get(secrets.XAIAPIKey, viper.GetString("ai.api_key")),
			MaxTokens:  viper.GetInt("ai.max_tokens"),
			MaxRetries: viper.GetInt("ai.max_retries"),
		},
		Format: types.FormatConfig{
			Spacing:         viper.GetString("format.spacing"),
			StylesFile:      viper.GetString("format.styles_file"),
			SectionKeywords: viper.GetStringSlice("format.section_keywords"),
		},
		Docs: types.DocsConfig{
			ClientSecretFile: loadedSecrets.Path(secrets.GoogleClientSecret, viper.GetString("docs.client_secret_file")),
			TokenFile:        loadedSecrets.Path(secrets.GoogleToken, viper.GetString("docs.token_file")),
			Share:            viper.GetBool("docs.share"),
		},
		History: types.HistoryConfig{
			Dir: viper.GetString("history.dir"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
	}
}

// newFormatter builds a formatter from the format settings.
func newFormatter(cfg types.FormatConfig) (*formatter.Formatter, error) {
	spacing, err := formatter.ParseSpacing(cfg.Spacing)
	if err != nil {
		return nil, err
	}
	opts := formatter.Options{Spacing: spacing}
	if len(cfg.SectionKeywords) > 0 {
		opts.SectionKeywords = cfg.SectionKeywords
	}
	if cfg.StylesFile != "" {
		styles, err := formatter.LoadStyleSheet(cfg.StylesFile)
		if err != nil {
			return nil, err
		}
		opts.Styles = styles
	}
	return formatter.New(opts), nil
}

// newPublisher wires the full pipeline. The returned close function
// releases the history database.
func newPublisher(ctx context.Context, cfg types.Config, m *metrics.Metrics) (*publish.Publisher, func(), error) {
	f, err := newFormatter(cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	backend, err := chat.NewXAIBackend(cfg.AI, nil)
	if err != nil {
		return nil, nil, err
	}
	docs, err := gdocs.NewGoogleService(ctx, cfg.Docs, slog.Default())
	if err != nil {
		return nil, nil, err
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		return nil, nil, err
	}

	p, err := publish.New(publish.Config{
		Chat:      backend,
		Docs:      docs,
		Formatter: f,
		History:   store,
		Metrics:   m,
		Logger:    slog.Default(),
		Share:     cfg.Docs.Share,
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return p, func() { store.Close() }, nil
}
