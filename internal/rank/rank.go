// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders papers by a weighted sum of normalized feature
// scores. Each mode is a fixed weighting of text match, citation count,
// recency, and (for semantic mode) embedding similarity.
package rank

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/renderarxiv/internal/embed"
	"github.com/pdiddy/renderarxiv/pkg/types"
)

// Mode selects the scoring weights.
type Mode string

const (
	ModeBalanced    Mode = "balanced"
	ModeRecent      Mode = "recent"
	ModeCited       Mode = "cited"
	ModeInfluential Mode = "influential"
	ModeRelevant    Mode = "relevant"
	ModeSemantic    Mode = "semantic"
)

// weights holds per-feature multipliers. Feature scores are all in [0,1],
// so the composite is too as long as the weights sum to at most 1.
type weights struct {
	text     float64
	citation float64
	recency  float64
	semantic float64
}

var modeWeights = map[Mode]weights{
	ModeBalanced:    {text: 0.40, citation: 0.35, recency: 0.25},
	ModeRecent:      {recency: 1.00},
	ModeCited:       {citation: 1.00},
	ModeInfluential: {citation: 0.60, recency: 0.40},
	ModeRelevant:    {text: 1.00},
	ModeSemantic:    {semantic: 0.60, citation: 0.25, recency: 0.15},
}

// ParseMode validates a mode name. It runs before any network call so an
// invalid --mode fails fast.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := modeWeights[m]; !ok {
		return "", fmt.Errorf("invalid mode %q (valid: balanced, recent, cited, influential, relevant, semantic)", s)
	}
	return m, nil
}

// NeedsCitations reports whether the mode weighs citation counts heavily
// enough that the citation fetch is enabled automatically.
func (m Mode) NeedsCitations() bool {
	return m == ModeBalanced || m == ModeCited || m == ModeInfluential
}

// NeedsEmbedder reports whether the mode requires the embedding backend.
func (m Mode) NeedsEmbedder() bool {
	return m == ModeSemantic
}

// Options configures a ranking run.
type Options struct {
	// Mode selects the weight table.
	Mode Mode

	// Category, when set, is a hard inclusion predicate applied before
	// scoring: papers without the tag are dropped.
	Category string

	// MaxResults truncates the output after sorting. Zero or negative
	// means no truncation.
	MaxResults int

	// Embedder supplies embedding vectors for semantic mode. Nil in any
	// other mode.
	Embedder embed.Embedder
}

// Rank filters and orders papers under the selected mode, returning a new
// slice sorted by descending composite score. Ties break on citation
// count, then publication date, then original API order. An empty input
// yields an empty output with no error.
func Rank(ctx context.Context, query string, papers []types.Paper, opts Options) ([]types.Paper, error) {
	w, ok := modeWeights[opts.Mode]
	if !ok {
		return nil, fmt.Errorf("invalid mode %q", opts.Mode)
	}
	if opts.Mode.NeedsEmbedder() && opts.Embedder == nil {
		return nil, fmt.Errorf("ranking mode %q unavailable: %w", opts.Mode, embed.ErrNotConfigured)
	}

	pool := papers
	if opts.Category != "" {
		pool = nil
		for _, p := range papers {
			if p.HasCategory(opts.Category) {
				pool = append(pool, p)
			}
		}
	}
	if len(pool) == 0 {
		return nil, nil
	}

	scores := make([]float64, len(pool))

	if w.text > 0 {
		terms := queryTerms(query)
		for i, p := range pool {
			scores[i] += w.text * textScore(terms, p)
		}
	}
	if w.citation > 0 {
		for i, s := range citationScores(pool) {
			scores[i] += w.citation * s
		}
	}
	if w.recency > 0 {
		for i, s := range recencyScores(pool) {
			scores[i] += w.recency * s
		}
	}
	if w.semantic > 0 {
		sem, err := semanticScores(ctx, query, pool, opts.Embedder)
		if err != nil {
			return nil, err
		}
		for i, s := range sem {
			scores[i] += w.semantic * s
		}
	}

	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		if ci, cj := pool[i].CitationCount(), pool[j].CitationCount(); ci != cj {
			return ci > cj
		}
		if !pool[i].Published.Equal(pool[j].Published) {
			return pool[i].Published.After(pool[j].Published)
		}
		// Stable sort preserves original API order for full ties.
		return false
	})

	ranked := make([]types.Paper, len(order))
	for i, idx := range order {
		ranked[i] = pool[idx]
	}

	if opts.MaxResults > 0 && len(ranked) > opts.MaxResults {
		ranked = ranked[:opts.MaxResults]
	}
	return ranked, nil
}

// semanticScores embeds the query and every paper (title + abstract) in
// one backend call and returns clamped cosine similarities.
func semanticScores(ctx context.Context, query string, papers []types.Paper, e embed.Embedder) ([]float64, error) {
	texts := make([]string, 0, len(papers)+1)
	texts = append(texts, query)
	for _, p := range papers {
		texts = append(texts, strings.TrimSpace(p.Title+" "+p.Abstract))
	}

	vectors, err := e.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("computing embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding backend returned %d vectors for %d texts", len(vectors), len(texts))
	}

	queryVec := vectors[0]
	scores := make([]float64, len(papers))
	for i := range papers {
		scores[i] = clamp01(embed.Cosine(queryVec, vectors[i+1]))
	}
	return scores, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
