// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv queries the arXiv search API and parses the Atom response
// into Paper records.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/renderarxiv/pkg/types"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// DefaultRequestInterval is the minimum spacing between consecutive arXiv
// API calls, per the API's informal rate limit.
const DefaultRequestInterval = 3 * time.Second

// overfetchFactor controls how many extra results are requested so the
// ranker has slack after category filtering and re-scoring.
const overfetchFactor = 2

// sortKeys lists the sort hints the arXiv API accepts.
var sortKeys = map[string]bool{
	"relevance":       true,
	"lastUpdatedDate": true,
	"submittedDate":   true,
}

// ValidSortBy reports whether s is a sort hint the arXiv API accepts.
func ValidSortBy(s string) bool { return sortKeys[s] }

// Client issues search queries against the arXiv API, spacing consecutive
// requests with a token-bucket limiter.
type Client struct {
	HTTP    *http.Client
	limiter *rate.Limiter
}

// NewClient returns a Client that waits at least interval between
// consecutive API calls. A zero interval uses DefaultRequestInterval.
func NewClient(httpClient *http.Client, interval time.Duration) *Client {
	if interval <= 0 {
		interval = DefaultRequestInterval
	}
	return &Client{
		HTTP:    httpClient,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Search queries the arXiv API and returns the parsed papers in API order.
// It requests overfetchFactor times cfg.MaxResults entries so downstream
// ranking has a wider pool to select from. A malformed feed is reported as
// zero results with a warning on w, not as an error.
func (c *Client) Search(ctx context.Context, query string, cfg types.SearchConfig, w io.Writer) ([]types.Paper, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	sortBy := cfg.SortBy
	if sortBy == "" {
		sortBy = "relevance"
	}

	params := url.Values{
		"search_query": {buildQuery(query, cfg.Category)},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults * overfetchFactor)},
		"sortBy":       {sortBy},
		"sortOrder":    {"descending"},
	}
	reqURL := apiBase + "?" + params.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		fmt.Fprintf(w, "warning: malformed arXiv response, treating as zero results: %v\n", err)
		return nil, nil
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		p, ok := entryToPaper(entry)
		if !ok {
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// buildQuery constructs the search_query parameter using the API's
// space-separated grammar; url.Values handles the wire encoding. A category
// filter is folded in as cat:<code> AND (<terms>); the ranker re-applies
// the filter as a hard predicate because the API returns cross-listed
// strays.
func buildQuery(query, category string) string {
	terms := "all:" + strings.Join(strings.Fields(query), " ")
	if category == "" {
		return terms
	}
	return fmt.Sprintf("cat:%s AND (%s)", category, terms)
}

// arXiv Atom feed XML structures, including the arxiv: namespace extensions.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string         `xml:"id"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Published       string         `xml:"published"`
	Updated         string         `xml:"updated"`
	Authors         []atomAuthor   `xml:"author"`
	Categories      []atomCategory `xml:"category"`
	PrimaryCategory atomCategory   `xml:"primary_category"`
	Comment         string         `xml:"comment"`
	JournalRef      string         `xml:"journal_ref"`
	DOI             string         `xml:"doi"`
	Links           []atomLink     `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// entryToPaper converts one Atom entry into a Paper. Entries without a
// recognizable arXiv ID are skipped.
func entryToPaper(entry atomEntry) (types.Paper, bool) {
	id := extractID(entry.ID)
	if id == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ArxivID:    id,
		Title:      collapseWhitespace(entry.Title),
		Abstract:   collapseWhitespace(entry.Summary),
		Comment:    collapseWhitespace(entry.Comment),
		JournalRef: collapseWhitespace(entry.JournalRef),
		DOI:        strings.TrimSpace(entry.DOI),
	}

	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}
	for _, c := range entry.Categories {
		if c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}
	p.PrimaryCategory = entry.PrimaryCategory.Term
	if p.PrimaryCategory == "" && len(p.Categories) > 0 {
		p.PrimaryCategory = p.Categories[0]
	}

	if t, err := time.Parse(time.RFC3339, entry.Published); err == nil {
		p.Published = t
	}
	if t, err := time.Parse(time.RFC3339, entry.Updated); err == nil {
		p.Updated = t
	}

	for _, l := range entry.Links {
		switch {
		case l.Title == "pdf" || strings.Contains(l.Href, "/pdf/"):
			p.PDFURL = l.Href
		case l.Rel == "alternate" || strings.Contains(l.Href, "/abs/"):
			p.AbsURL = l.Href
		}
	}
	if p.AbsURL == "" {
		p.AbsURL = "https://arxiv.org/abs/" + id
	}
	if p.PDFURL == "" {
		p.PDFURL = "https://arxiv.org/pdf/" + id
	}

	return p, true
}

// extractID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// collapseWhitespace folds the feed's embedded newlines and indentation
// into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
