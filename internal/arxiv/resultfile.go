// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/renderarxiv/pkg/types"
)

// ResultFile is the on-disk representation of a search and its ranked
// papers. A saved search can be re-rendered later without re-querying the
// arXiv or Semantic Scholar APIs.
type ResultFile struct {
	Query   string            `yaml:"query"`
	Mode    string            `yaml:"mode"`
	Config  ResultFileConfig  `yaml:"config"`
	Papers  []types.Paper     `yaml:"papers"`
	Summary ResultFileSummary `yaml:"summary"`
}

// ResultFileConfig stores the search configuration that produced the papers.
type ResultFileConfig struct {
	MaxResults int    `yaml:"max_results"`
	Category   string `yaml:"category,omitempty"`
	SortBy     string `yaml:"sort_by,omitempty"`
}

// ResultFileSummary stores result statistics and a timestamp.
type ResultFileSummary struct {
	Total          int       `yaml:"total"`
	CitationsKnown int       `yaml:"citations_known"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a query and its ranked papers to a YAML file.
func WriteResultFile(path, query, mode string, cfg types.SearchConfig, papers []types.Paper) error {
	rf := ResultFile{
		Query: query,
		Mode:  mode,
		Config: ResultFileConfig{
			MaxResults: cfg.MaxResults,
			Category:   cfg.Category,
			SortBy:     cfg.SortBy,
		},
		Papers: papers,
		Summary: ResultFileSummary{
			Total:     len(papers),
			Timestamp: time.Now(),
		},
	}
	for _, p := range papers {
		if p.Citations != nil {
			rf.Summary.CitationsKnown++
		}
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
