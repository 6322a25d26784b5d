// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/renderarxiv/pkg/types"
)

func TestResultFileRoundTrip(t *testing.T) {
	cites := 42
	papers := []types.Paper{
		{
			ArxivID:         "2301.07041",
			Title:           "Paper A",
			Authors:         []string{"Ada Lovelace"},
			Abstract:        "An abstract.",
			Categories:      []string{"cs.LG", "cs.CL"},
			PrimaryCategory: "cs.LG",
			Published:       time.Date(2023, 1, 17, 0, 0, 0, 0, time.UTC),
			AbsURL:          "https://arxiv.org/abs/2301.07041",
			PDFURL:          "https://arxiv.org/pdf/2301.07041",
			Citations:       &cites,
		},
		{ArxivID: "2105.00001", Title: "Paper B"},
	}

	path := filepath.Join(t.TempDir(), "results.yaml")
	cfg := types.SearchConfig{MaxResults: 20, Category: "cs.LG", SortBy: "relevance"}
	if err := WriteResultFile(path, "attention", "balanced", cfg, papers); err != nil {
		t.Fatalf("WriteResultFile() error: %v", err)
	}

	rf, err := ReadResultFile(path)
	if err != nil {
		t.Fatalf("ReadResultFile() error: %v", err)
	}
	if rf.Query != "attention" || rf.Mode != "balanced" {
		t.Errorf("query/mode = %q/%q", rf.Query, rf.Mode)
	}
	if rf.Config.Category != "cs.LG" {
		t.Errorf("Config.Category = %q", rf.Config.Category)
	}
	if len(rf.Papers) != 2 {
		t.Fatalf("len(Papers) = %d, want 2", len(rf.Papers))
	}
	if rf.Papers[0].CitationCount() != 42 {
		t.Errorf("citations = %d, want 42", rf.Papers[0].CitationCount())
	}
	if rf.Papers[1].Citations != nil {
		t.Error("Paper B citations should stay nil")
	}
	if rf.Summary.Total != 2 || rf.Summary.CitationsKnown != 1 {
		t.Errorf("summary = %+v", rf.Summary)
	}
}

func TestReadResultFileMissing(t *testing.T) {
	if _, err := ReadResultFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadResultFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("::: not yaml {{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadResultFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
