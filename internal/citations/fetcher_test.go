// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/renderarxiv/pkg/types"
)

func testCfg() types.CitationsConfig {
	return types.CitationsConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		BatchSize: 100,
	}
}

func swapAPI(t *testing.T, url string) {
	t.Helper()
	old := apiBase
	apiBase = url
	t.Cleanup(func() { apiBase = old })
}

func TestFetchMergesCounts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"ARXIV:2301.07041", "ARXIV:2105.00001"}, req.IDs)

		// Second paper unknown to Semantic Scholar → null entry.
		fmt.Fprint(w, `[{"paperId":"abc","citationCount":42,"externalIds":{"ArXiv":"2301.07041"}},null]`)
	}))
	defer ts.Close()
	swapAPI(t, ts.URL)

	papers := []types.Paper{
		{ArxivID: "2301.07041", Title: "A"},
		{ArxivID: "2105.00001", Title: "B"},
	}

	var buf bytes.Buffer
	f := &Fetcher{Client: ts.Client()}
	out := f.Fetch(context.Background(), papers, testCfg(), &buf)

	require.Len(t, out, 2)
	require.NotNil(t, out[0].Citations)
	assert.Equal(t, 42, *out[0].Citations)
	assert.Nil(t, out[1].Citations, "unknown papers keep a nil count")
}

func TestFetchKeysByRequestedID(t *testing.T) {
	// Semantic Scholar may echo an externalIds.ArXiv that differs from the
	// requested ID in case or formatting. The merge and the cache must key
	// by the ID we asked for, positionally.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"paperId":"abc","citationCount":9,"externalIds":{"ArXiv":"2301.07041V2"}}]`)
	}))
	defer ts.Close()
	swapAPI(t, ts.URL)

	cache := openTestCache(t)
	f := &Fetcher{Client: ts.Client(), Cache: cache}

	var buf bytes.Buffer
	out := f.Fetch(context.Background(), []types.Paper{{ArxivID: "2301.07041"}}, testCfg(), &buf)
	require.NotNil(t, out[0].Citations)
	assert.Equal(t, 9, *out[0].Citations)

	count, ok := cache.Get(context.Background(), "2301.07041", time.Hour)
	require.True(t, ok, "cache entry must use the requested ID")
	assert.Equal(t, 9, count)
}

func TestFetchChunksBatches(t *testing.T) {
	var batchSizes []int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		batchSizes = append(batchSizes, len(req.IDs))

		entries := make([]*batchEntry, len(req.IDs))
		require.NoError(t, json.NewEncoder(w).Encode(entries))
	}))
	defer ts.Close()
	swapAPI(t, ts.URL)

	papers := make([]types.Paper, 5)
	for i := range papers {
		papers[i] = types.Paper{ArxivID: fmt.Sprintf("2301.0000%d", i)}
	}

	cfg := testCfg()
	cfg.BatchSize = 2

	var buf bytes.Buffer
	f := &Fetcher{Client: ts.Client()}
	f.Fetch(context.Background(), papers, cfg, &buf)

	assert.Equal(t, []int{2, 2, 1}, batchSizes)
}

func TestFetchPartialFailure(t *testing.T) {
	var call int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		if call == 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		entries := make([]*batchEntry, len(req.IDs))
		for i := range entries {
			entries[i] = &batchEntry{CitationCount: 7}
		}
		require.NoError(t, json.NewEncoder(w).Encode(entries))
	}))
	defer ts.Close()
	swapAPI(t, ts.URL)

	papers := []types.Paper{
		{ArxivID: "2301.00001"},
		{ArxivID: "2301.00002"},
	}
	cfg := testCfg()
	cfg.BatchSize = 1

	var buf bytes.Buffer
	f := &Fetcher{Client: ts.Client()}
	out := f.Fetch(context.Background(), papers, cfg, &buf)

	// First batch failed, second succeeded; the run still completes.
	assert.Nil(t, out[0].Citations)
	require.NotNil(t, out[1].Citations)
	assert.Equal(t, 7, *out[1].Citations)
	assert.Contains(t, buf.String(), "warning")
}

func TestFetchEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	f := &Fetcher{Client: http.DefaultClient}
	out := f.Fetch(context.Background(), nil, testCfg(), &buf)
	assert.Empty(t, out)
	assert.Empty(t, buf.String())
}

func TestFetchSendsAPIKey(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		fmt.Fprint(w, `[null]`)
	}))
	defer ts.Close()
	swapAPI(t, ts.URL)

	cfg := testCfg()
	cfg.APIKey = "s2-secret"

	var buf bytes.Buffer
	f := &Fetcher{Client: ts.Client()}
	f.Fetch(context.Background(), []types.Paper{{ArxivID: "2301.00001"}}, cfg, &buf)

	assert.Equal(t, "s2-secret", gotKey)
}

func TestFetchServesFromCache(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `[{"paperId":"abc","citationCount":10,"externalIds":{"ArXiv":"2301.00001"}}]`)
	}))
	defer ts.Close()
	swapAPI(t, ts.URL)

	cache := openTestCache(t)
	f := &Fetcher{Client: ts.Client(), Cache: cache}

	var buf bytes.Buffer
	papers := []types.Paper{{ArxivID: "2301.00001"}}
	f.Fetch(context.Background(), papers, testCfg(), &buf)
	require.Equal(t, 1, calls)

	// Second run hits the cache; no further API calls.
	papers2 := []types.Paper{{ArxivID: "2301.00001"}}
	out := f.Fetch(context.Background(), papers2, testCfg(), &buf)
	assert.Equal(t, 1, calls)
	require.NotNil(t, out[0].Citations)
	assert.Equal(t, 10, *out[0].Citations)
}
