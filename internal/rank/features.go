// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"math"
	"strings"
	"time"

	"github.com/pdiddy/renderarxiv/pkg/types"
)

// Title matches count more than abstract matches.
const (
	titleWeight    = 0.7
	abstractWeight = 0.3
)

// recencyHalfLife controls the exponential age decay: a paper this old
// scores 0.5, twice as old scores 0.25. Two years keeps the current
// publication cycle on top without burying established work.
const recencyHalfLife = 2 * 365 * 24 * time.Hour

// queryTerms lowercases and tokenizes the query, dropping duplicates.
func queryTerms(query string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, t := range tokenize(query) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	return terms
}

// textScore is the fraction of query terms present in the title and in the
// abstract, combined with title matches weighted higher. Always in [0,1].
func textScore(terms []string, p types.Paper) float64 {
	if len(terms) == 0 {
		return 0
	}
	titleSet := tokenSet(p.Title)
	absSet := tokenSet(p.Abstract)

	var inTitle, inAbstract int
	for _, t := range terms {
		if titleSet[t] {
			inTitle++
		}
		if absSet[t] {
			inAbstract++
		}
	}
	n := float64(len(terms))
	return titleWeight*float64(inTitle)/n + abstractWeight*float64(inAbstract)/n
}

// citationScores log-scales citation counts and normalizes them against
// the highest count in the set, so one runaway paper does not flatten the
// rest. Missing counts score zero; an all-zero set stays all zero.
func citationScores(papers []types.Paper) []float64 {
	scores := make([]float64, len(papers))
	var maxLog float64
	for i, p := range papers {
		scores[i] = math.Log1p(float64(p.CitationCount()))
		if scores[i] > maxLog {
			maxLog = scores[i]
		}
	}
	if maxLog == 0 {
		return scores
	}
	for i := range scores {
		scores[i] /= maxLog
	}
	return scores
}

// recencyScores maps publication age onto (0,1] with exponential decay.
// Papers without a publication date score zero.
func recencyScores(papers []types.Paper) []float64 {
	now := time.Now()
	scores := make([]float64, len(papers))
	for i, p := range papers {
		if p.Published.IsZero() {
			continue
		}
		age := now.Sub(p.Published)
		if age < 0 {
			age = 0
		}
		scores[i] = math.Pow(0.5, float64(age)/float64(recencyHalfLife))
	}
	return scores
}

// tokenize lowercases s and splits it into alphanumeric runs.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}

// tokenSet returns the distinct tokens of s.
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range tokenize(s) {
		set[t] = true
	}
	return set
}
