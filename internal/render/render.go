// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats ranked papers into a self-contained HTML document
// with a human-readable card view and a plain-text LLM-paste view.
package render

import (
	"strings"

	"github.com/pdiddy/renderarxiv/pkg/types"
)

// maxDisplayAuthors caps the author list shown per paper; longer lists get
// an "et al." suffix.
const maxDisplayAuthors = 5

// FormatAuthors joins author names, truncating long lists with "et al.".
func FormatAuthors(authors []string, max int) string {
	if max <= 0 {
		max = maxDisplayAuthors
	}
	if len(authors) <= max {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:max], ", ") + ", et al."
}

// dateString formats a date as YYYY-MM-DD, or empty for a zero date.
func dateString(p types.Paper) string {
	if p.Published.IsZero() {
		return ""
	}
	return p.Published.Format("2006-01-02")
}
