// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doc-assistant CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-assistant/internal/app"
	"github.com/pdiddy/doc-assistant/internal/logging"
	"github.com/pdiddy/doc-assistant/internal/secrets"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds one API key per file.
const secretsDir = ".secrets/"

// skipAppAnnotation marks commands that run without building the App.
const skipAppAnnotation = "doc-assistant/skip-app"

// application is built in PersistentPreRunE and closed when the command
// finishes, whether or not it failed.
var application *app.App

// rootCmd is the base command for the doc-assistant CLI.
var rootCmd = &cobra.Command{
	Use:   "doc-assistant",
	Short: "Ask questions about PDFs, fill templates, and generate PDFs",
	Long: `doc-assistant keeps a flat folder of uploaded PDFs and their extracted
text. It answers questions about a document, writes step-by-step
instructions, analyzes situations, fills key: value templates, and renders
text back to PDF.

Language model calls use the OpenAI or Anthropic API. Keys are read from
.secrets/openai-api-key and .secrets/anthropic-api-key, falling back to
OPENAI_API_KEY and ANTHROPIC_API_KEY.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipAppAnnotation] == "true" {
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}

		s, err := secrets.Load(secretsDir, logger)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("secrets.loaded", "keys", keys)
		}
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey, _ = s.Lookup(secrets.KeyFor(string(cfg.LLM.Provider)))
		}

		application, err = app.New(cfg, app.WithLogger(logger))
		return err
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	cobra.OnFinalize(closeApplication)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./doc-assistant.yaml or ~/.config/doc-assistant/doc-assistant.yaml)")
	pf.String("store-dir", "", "document store directory (default: uploads)")
	pf.String("provider", "", "language model provider: openai or anthropic")
	pf.String("model", "", "language model identifier")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	viper.BindPFlag("store.dir", pf.Lookup("store-dir"))
	viper.BindPFlag("llm.provider", pf.Lookup("provider"))
	viper.BindPFlag("llm.model", pf.Lookup("model"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))

	setDefaults(types.DefaultConfig())
}

// setDefaults registers every configuration key so environment variables
// and Unmarshal see them.
func setDefaults(d types.AppConfig) {
	viper.SetDefault("store.dir", d.Store.Dir)
	viper.SetDefault("extraction.backend", string(d.Extraction.Backend))
	viper.SetDefault("extraction.image", d.Extraction.Image)
	viper.SetDefault("llm.provider", string(d.LLM.Provider))
	viper.SetDefault("llm.model", d.LLM.Model)
	viper.SetDefault("llm.base_url", d.LLM.BaseURL)
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.temperature", d.LLM.Temperature)
	viper.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	viper.SetDefault("llm.max_retries", d.LLM.MaxRetries)
	viper.SetDefault("llm.timeout", d.LLM.Timeout)
	viper.SetDefault("llm.user_agent", d.LLM.UserAgent)
	viper.SetDefault("pdf.page_width", d.PDF.Width)
	viper.SetDefault("pdf.page_height", d.PDF.Height)
	viper.SetDefault("pdf.margin", d.PDF.Margin)
	viper.SetDefault("pdf.line_height", d.PDF.LineHeight)
	viper.SetDefault("pdf.left", d.PDF.Left)
	viper.SetDefault("pdf.font_family", d.PDF.FontFamily)
	viper.SetDefault("pdf.font_size", d.PDF.FontSize)
	viper.SetDefault("journal.enabled", d.Journal.Enabled)
	viper.SetDefault("journal.path", d.Journal.Path)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
}

func closeApplication() {
	if application == nil {
		return
	}
	if err := application.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: closing journal:", err)
	}
	application = nil
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doc-assistant")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doc-assistant"))
		}
	}

	viper.SetEnvPrefix("DOC_ASSISTANT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged defaults, config file, environment, and
// flags into an AppConfig.
func loadConfig() (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
