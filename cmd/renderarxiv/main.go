// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the renderarxiv CLI: search arXiv,
// rank the results, and render them into a self-contained HTML page.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/renderarxiv/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command; the search-rank-render pipeline runs directly
// on it so the common case stays a single invocation.
var rootCmd = &cobra.Command{
	Use:   "renderarxiv [query]",
	Short: "Search arXiv and render ranked results into HTML",
	Long: `renderarxiv queries the arXiv API for papers matching a free-text query,
ranks them locally (optionally enriched with Semantic Scholar citation counts
or OpenAI embeddings), and renders the result into a single self-contained
HTML page with a human card view and an LLM-paste view.

Examples:
  renderarxiv "transformer attention mechanism"
  renderarxiv "quantum computing" --mode recent --max-results 15
  renderarxiv "deep learning" --category cs.LG --mode relevant
  renderarxiv "neural networks" --mode semantic`,
	Args: cobra.ArbitraryArgs,
	RunE: runRender,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./renderarxiv.yaml or ~/.config/renderarxiv/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("renderarxiv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "renderarxiv"))
		}
	}

	viper.SetEnvPrefix("RENDERARXIV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
