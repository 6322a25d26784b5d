// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/renderarxiv/pkg/types"
)

// FormatForLLM renders the ranked papers as a plain-text block suitable
// for pasting into an LLM conversation: a numbered banner per paper,
// labeled metadata lines, then the abstract.
func FormatForLLM(papers []types.Paper) string {
	if len(papers) == 0 {
		return "No papers found."
	}

	var b strings.Builder
	banner := strings.Repeat("#", 80)
	for i, p := range papers {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s\n# PAPER %d\n%s\n\n", banner, i+1, banner)
		b.WriteString(formatPaperForLLM(p))
	}
	return b.String()
}

func formatPaperForLLM(p types.Paper) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Title: %s\n", p.Title)
	fmt.Fprintf(&b, "Authors: %s\n", FormatAuthors(p.Authors, 0))
	if d := dateString(p); d != "" {
		fmt.Fprintf(&b, "Published: %s\n", d)
	}
	if len(p.Categories) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(p.Categories, ", "))
	}
	fmt.Fprintf(&b, "arXiv: %s\n", p.AbsURL)
	fmt.Fprintf(&b, "PDF: %s\n", p.PDFURL)
	if p.Citations != nil {
		fmt.Fprintf(&b, "Citations: %d\n", *p.Citations)
	}
	if p.Comment != "" {
		fmt.Fprintf(&b, "Note: %s\n", p.Comment)
	}
	if p.JournalRef != "" {
		fmt.Fprintf(&b, "Journal: %s\n", p.JournalRef)
	}
	if p.DOI != "" {
		fmt.Fprintf(&b, "DOI: %s\n", p.DOI)
	}

	fmt.Fprintf(&b, "\nAbstract:\n%s", p.Abstract)
	return b.String()
}
