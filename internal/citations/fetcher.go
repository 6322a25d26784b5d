// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citations enriches Paper records with citation counts from the
// Semantic Scholar graph API, with an optional SQLite cache in front of it.
package citations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/renderarxiv/internal/httputil"
	"github.com/pdiddy/renderarxiv/pkg/types"
)

// apiBase is the Semantic Scholar paper batch endpoint. Declared as a var
// so tests can substitute an httptest server.
var apiBase = "https://api.semanticscholar.org/graph/v1/paper/batch"

const (
	defaultBatchSize = 100
	batchFields      = "citationCount"
)

// Fetcher looks up citation counts for batches of arXiv IDs.
type Fetcher struct {
	Client *http.Client
	Cache  *Cache // nil disables caching
}

// Fetch populates the Citations field of each paper in place. Counts are
// served from the cache when fresh; only misses go to Semantic Scholar.
// A failed batch logs a warning on w and leaves its papers untouched —
// partial failure never aborts the run. The (possibly partially) enriched
// slice is always returned.
func (f *Fetcher) Fetch(ctx context.Context, papers []types.Paper, cfg types.CitationsConfig, w io.Writer) []types.Paper {
	if len(papers) == 0 {
		return papers
	}

	// index of papers still needing a lookup, keyed by arXiv ID
	pending := make(map[string][]int, len(papers))
	var order []string

	for i := range papers {
		id := papers[i].ArxivID
		if f.Cache != nil {
			if count, ok := f.Cache.Get(ctx, id, cfg.CacheTTL); ok {
				c := count
				papers[i].Citations = &c
				continue
			}
		}
		if _, seen := pending[id]; !seen {
			order = append(order, id)
		}
		pending[id] = append(pending[id], i)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	for start := 0; start < len(order); start += batchSize {
		end := start + batchSize
		if end > len(order) {
			end = len(order)
		}
		batch := order[start:end]

		counts, err := f.fetchBatch(ctx, batch, cfg)
		if err != nil {
			fmt.Fprintf(w, "warning: citation lookup failed for %d paper(s): %v\n", len(batch), err)
			continue
		}

		for id, count := range counts {
			c := count
			for _, idx := range pending[id] {
				papers[idx].Citations = &c
			}
			if f.Cache != nil {
				if err := f.Cache.Put(ctx, id, count); err != nil {
					fmt.Fprintf(w, "warning: citation cache write failed: %v\n", err)
				}
			}
		}
	}

	return papers
}

// fetchBatch queries the batch endpoint for one chunk of IDs and returns a
// map of arXiv ID to citation count. Papers unknown to Semantic Scholar
// (null entries in the response) are absent from the map.
func (f *Fetcher) fetchBatch(ctx context.Context, ids []string, cfg types.CitationsConfig) (map[string]int, error) {
	prefixed := make([]string, len(ids))
	for i, id := range ids {
		prefixed[i] = "ARXIV:" + id
	}

	body, err := json.Marshal(batchRequest{IDs: prefixed})
	if err != nil {
		return nil, fmt.Errorf("encoding batch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"?fields="+batchFields, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.APIKey != "" {
		req.Header.Set("x-api-key", cfg.APIKey)
	}

	resp, err := httputil.DoWithBackoff(ctx, f.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	// The response is an array aligned with the request IDs; unknown
	// papers come back as null.
	var entries []*batchEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	counts := make(map[string]int)
	for i, entry := range entries {
		if entry == nil || i >= len(ids) {
			continue
		}
		// Key by the requested ID, not the echoed externalIds.ArXiv: the
		// echo can differ in case or formatting, and the pending map and
		// cache are keyed by our canonical IDs.
		counts[ids[i]] = entry.CitationCount
	}
	return counts, nil
}

// Semantic Scholar batch API JSON structures.
type batchRequest struct {
	IDs []string `json:"ids"`
}

// Entries align positionally with the requested ids; the echoed paperId
// and externalIds are not used as merge keys.
type batchEntry struct {
	PaperID       string `json:"paperId"`
	CitationCount int    `json:"citationCount"`
}
