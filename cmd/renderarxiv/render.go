// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/renderarxiv/internal/arxiv"
	"github.com/pdiddy/renderarxiv/internal/browser"
	"github.com/pdiddy/renderarxiv/internal/citations"
	"github.com/pdiddy/renderarxiv/internal/embed"
	"github.com/pdiddy/renderarxiv/internal/rank"
	"github.com/pdiddy/renderarxiv/internal/render"
	"github.com/pdiddy/renderarxiv/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "renderarxiv/0.1"
)

func init() {
	rootCmd.Flags().Int("max-results", 20, "number of papers to return (after ranking)")
	rootCmd.Flags().String("mode", "balanced", "ranking mode: balanced, recent, cited, influential, relevant, or semantic")
	rootCmd.Flags().String("category", "", "filter by arXiv category (e.g. cs.LG, math.CO)")
	rootCmd.Flags().String("sort-by", "relevance", "arXiv API sort criterion: relevance, lastUpdatedDate, or submittedDate")
	rootCmd.Flags().Bool("fetch-citations", false, "fetch Semantic Scholar citation counts (implied by citation-weighted modes)")
	rootCmd.Flags().StringP("out", "o", "", "output HTML file path (default: temp file derived from the query)")
	rootCmd.Flags().Bool("no-open", false, "don't open the HTML in a browser after generation")
	rootCmd.Flags().Bool("no-cache", false, "bypass the local citation cache")
	rootCmd.Flags().String("save", "", "also save ranked results to a YAML file")
	rootCmd.Flags().String("from-file", "", "re-rank and re-render results from a saved YAML file instead of searching")
	rootCmd.Flags().Bool("json", false, "write ranked papers as JSON to stdout instead of HTML")
	rootCmd.Flags().Bool("csl", false, "write ranked papers as CSL-YAML to stdout instead of HTML")

	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", defaultUserAgent)
	viper.SetDefault("search.request_interval", arxiv.DefaultRequestInterval)
	viper.SetDefault("citations.batch_size", 100)
	viper.SetDefault("citations.cache_ttl", citations.DefaultCacheTTL)
	viper.SetDefault("citations.cache_path", "")
	viper.SetDefault("embedding.model", "")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fromFile, _ := cmd.Flags().GetString("from-file")
	if fromFile == "" && len(args) == 0 {
		return fmt.Errorf("provide a search query (or --from-file to re-render saved results)")
	}
	query := strings.Join(args, " ")

	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := rank.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	if category != "" {
		if err := arxiv.ValidateCategory(category); err != nil {
			return err
		}
	}

	sortBy, _ := cmd.Flags().GetString("sort-by")
	if !arxiv.ValidSortBy(sortBy) {
		return fmt.Errorf("invalid --sort-by %q: must be relevance, lastUpdatedDate, or submittedDate", sortBy)
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		return fmt.Errorf("--max-results must be positive, got %d", maxResults)
	}

	// Resolve the embedding backend before touching the network so a missing
	// API key fails fast instead of after a search round-trip.
	var embedder embed.Embedder
	if mode.NeedsEmbedder() {
		e, err := embed.NewOpenAI(types.EmbeddingConfig{
			Model:  viper.GetString("embedding.model"),
			APIKey: secretDefault("openai-api-key", ""),
		})
		if err != nil {
			return err
		}
		embedder = e
	}

	httpClient := &http.Client{Timeout: viper.GetDuration("http.timeout")}

	searchCfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		MaxResults:      maxResults,
		Category:        category,
		SortBy:          sortBy,
		RequestInterval: viper.GetDuration("search.request_interval"),
	}

	var papers []types.Paper
	if fromFile != "" {
		rf, err := arxiv.ReadResultFile(fromFile)
		if err != nil {
			return err
		}
		papers = rf.Papers
		if query == "" {
			query = rf.Query
		}
		fmt.Fprintf(os.Stderr, "Loaded %d papers from %s\n", len(papers), fromFile)
	} else {
		fmt.Fprintf(os.Stderr, "Searching arXiv for: %s\n", query)
		client := arxiv.NewClient(httpClient, searchCfg.RequestInterval)
		papers, err = client.Search(ctx, query, searchCfg, os.Stderr)
		if err != nil {
			return err
		}
	}

	if len(papers) == 0 {
		return fmt.Errorf("no papers found for %q; try a different query", query)
	}

	fetchFlag, _ := cmd.Flags().GetBool("fetch-citations")
	if fetchFlag || mode.NeedsCitations() {
		papers = fetchCitations(ctx, cmd, httpClient, papers)
	}

	ranked, err := rank.Rank(ctx, query, papers, rank.Options{
		Mode:       mode,
		Category:   category,
		MaxResults: maxResults,
		Embedder:   embedder,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Filtered to %d papers (mode=%s)\n", len(ranked), mode)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := arxiv.WriteResultFile(savePath, query, string(mode), searchCfg, ranked); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved results to %s\n", savePath)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}
	if asCSL, _ := cmd.Flags().GetBool("csl"); asCSL {
		return render.FormatCSL(ranked, os.Stdout)
	}

	html, err := render.HTML(query, string(mode), ranked)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = tempOutputPath(query)
	}
	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing HTML output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %.1f KiB to %s\n", float64(len(html))/1024, outPath)

	if noOpen, _ := cmd.Flags().GetBool("no-open"); !noOpen {
		abs, err := filepath.Abs(outPath)
		if err != nil {
			abs = outPath
		}
		if err := browser.Open("file://" + abs); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	return nil
}

// fetchCitations enriches papers with Semantic Scholar citation counts,
// using the local cache unless --no-cache is set. Cache failures degrade to
// uncached fetching rather than aborting.
func fetchCitations(ctx context.Context, cmd *cobra.Command, httpClient *http.Client, papers []types.Paper) []types.Paper {
	cfg := types.CitationsConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		APIKey:    secretDefault("semantic-scholar-api-key", ""),
		BatchSize: viper.GetInt("citations.batch_size"),
		CacheTTL:  viper.GetDuration("citations.cache_ttl"),
	}

	var cache *citations.Cache
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		path := viper.GetString("citations.cache_path")
		if path == "" {
			path = citations.DefaultCachePath()
		}
		if path != "" {
			c, err := citations.OpenCache(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: citation cache unavailable: %v\n", err)
			} else {
				cache = c
				defer cache.Close()
			}
		}
	}

	fetcher := &citations.Fetcher{Client: httpClient, Cache: cache}
	fmt.Fprintln(os.Stderr, "Fetching citation counts from Semantic Scholar")
	return fetcher.Fetch(ctx, papers, cfg, os.Stderr)
}

// tempOutputPath derives a temp-file path from the query string.
func tempOutputPath(query string) string {
	safe := strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return '_'
	}, query)
	if len(safe) > 30 {
		safe = safe[:30]
	}
	return filepath.Join(os.TempDir(), "renderarxiv_"+safe+".html")
}
