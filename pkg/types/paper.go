// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the renderarxiv pipeline:
// the Paper record produced by the arXiv client, enriched by the citation
// fetcher, and consumed by the ranker and renderer, plus the per-stage
// configuration structs.
package types

import "time"

// Paper holds the metadata of a single arXiv paper. It is constructed from
// one Atom feed entry and is immutable afterwards, except for Citations,
// which the citation fetcher sets once when Semantic Scholar has data.
type Paper struct {
	// ArxivID is the canonical arXiv identifier without version suffix
	// (e.g. "2301.07041").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title with feed whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract with feed whitespace collapsed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Categories lists the arXiv taxonomy codes in feed order (e.g. "cs.LG").
	Categories []string `json:"categories" yaml:"categories"`

	// PrimaryCategory is the arXiv primary classification, falling back to
	// the first category when the feed omits it.
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// Published is the first submission date.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the date of the latest version.
	Updated time.Time `json:"updated" yaml:"updated"`

	// AbsURL is the arXiv abstract page URL.
	AbsURL string `json:"abs_url" yaml:"abs_url"`

	// PDFURL is the arXiv PDF download URL.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Comment is the author comment (e.g. "10 pages, 3 figures"), if any.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// JournalRef is the journal reference, if published elsewhere.
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`

	// DOI is the registered DOI, if any.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Citations is the citation count from Semantic Scholar. Nil until
	// fetched; nil also when the paper is unknown to Semantic Scholar.
	Citations *int `json:"citations,omitempty" yaml:"citations,omitempty"`
}

// CitationCount returns the citation count, or zero when none was fetched.
func (p Paper) CitationCount() int {
	if p.Citations == nil {
		return 0
	}
	return *p.Citations
}

// HasCategory reports whether the paper carries the given taxonomy code.
func (p Paper) HasCategory(code string) bool {
	for _, c := range p.Categories {
		if c == code {
			return true
		}
	}
	return false
}
