// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pdiddy/renderarxiv/internal/arxiv"
	"github.com/pdiddy/renderarxiv/pkg/types"
)

// pageData is the root template context.
type pageData struct {
	Query   string
	Mode    string
	Papers  []paperView
	LLMText string
}

// paperView is one card in the human view.
type paperView struct {
	Index        int
	Title        string
	Authors      string
	Date         string
	Citations    int
	HasCitations bool
	Categories   []categoryView
	Abstract     string
	Comment      string
	JournalRef   string
	DOI          string
	DOIURL       string
	AbsURL       string
	PDFURL       string
}

// categoryView pairs a taxonomy code with its display name.
type categoryView struct {
	Code string
	Name string
}

// maxDisplayCategories caps the tags shown per card.
const maxDisplayCategories = 3

// HTML renders the ranked papers into a single self-contained document:
// embedded CSS and toggle script, no external asset references.
func HTML(query, mode string, papers []types.Paper) (string, error) {
	data := pageData{
		Query:   query,
		Mode:    mode,
		LLMText: FormatForLLM(papers),
	}

	for i, p := range papers {
		view := paperView{
			Index:      i + 1,
			Title:      p.Title,
			Authors:    FormatAuthors(p.Authors, 0),
			Date:       dateString(p),
			Abstract:   p.Abstract,
			Comment:    p.Comment,
			JournalRef: p.JournalRef,
			DOI:        p.DOI,
			AbsURL:     p.AbsURL,
			PDFURL:     p.PDFURL,
		}
		if p.Citations != nil {
			view.Citations = *p.Citations
			view.HasCitations = true
		}
		if p.DOI != "" {
			view.DOIURL = "https://doi.org/" + p.DOI
		}
		cats := p.Categories
		if len(cats) > maxDisplayCategories {
			cats = cats[:maxDisplayCategories]
		}
		for _, c := range cats {
			view.Categories = append(view.Categories, categoryView{Code: c, Name: arxiv.CategoryName(c)})
		}
		data.Papers = append(data.Papers, view)
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return b.String(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>renderarxiv – {{.Query}}</title>
<style>
  * { box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif;
    margin: 0;
    padding: 0;
    line-height: 1.6;
    background: #667eea;
    min-height: 100vh;
  }
  .container {
    max-width: 1100px;
    margin: 0 auto;
    padding: 2rem;
    background: white;
    min-height: 100vh;
  }
  h1 { margin-bottom: 0.5rem; color: #2d3748; font-size: 2rem; }
  .summary {
    color: #718096;
    margin-bottom: 2rem;
    padding-bottom: 1rem;
    border-bottom: 2px solid #e2e8f0;
  }
  .paper {
    border: 1px solid #e2e8f0;
    border-radius: 12px;
    padding: 2rem;
    margin-bottom: 2rem;
    background: white;
    box-shadow: 0 4px 6px rgba(0,0,0,0.05);
  }
  .paper h2 { margin: 0 0 1rem 0; font-size: 1.3rem; color: #2d3748; line-height: 1.4; }
  .meta { display: flex; gap: 1.5rem; margin-bottom: 1rem; flex-wrap: wrap; font-size: 0.9rem; }
  .meta span { color: #4a5568; }
  .authors { font-weight: 500; }
  .citations { color: #667eea; font-weight: 600; }
  .categories { margin-bottom: 1rem; display: flex; gap: 0.5rem; flex-wrap: wrap; }
  .category-tag {
    background: #667eea;
    color: white;
    padding: 0.25rem 0.75rem;
    border-radius: 20px;
    font-size: 0.85rem;
    cursor: help;
  }
  .abstract {
    background: #f7fafc;
    padding: 1.25rem;
    border-radius: 8px;
    font-size: 0.95rem;
    color: #2d3748;
    margin-bottom: 1rem;
    border-left: 4px solid #667eea;
  }
  .extras {
    font-size: 0.9rem;
    color: #4a5568;
    margin-bottom: 1rem;
    padding: 0.75rem;
    background: #edf2f7;
    border-radius: 6px;
  }
  .extras a { color: #667eea; text-decoration: none; }
  .links { display: flex; gap: 1rem; flex-wrap: wrap; }
  .btn {
    padding: 0.6rem 1.25rem;
    border: 2px solid #667eea;
    background: white;
    color: #667eea;
    text-decoration: none;
    border-radius: 8px;
    font-weight: 600;
    font-size: 0.9rem;
  }
  .btn-primary { background: #667eea; color: white; border: none; }
  .view-toggle {
    margin: 2rem 0;
    display: flex;
    gap: 0.75rem;
    align-items: center;
    padding-bottom: 1.5rem;
    border-bottom: 2px solid #e2e8f0;
  }
  .toggle-btn {
    padding: 0.65rem 1.5rem;
    border: 2px solid #cbd5e0;
    background: white;
    cursor: pointer;
    border-radius: 8px;
    font-size: 1rem;
    font-weight: 600;
    color: #4a5568;
  }
  .toggle-btn.active { background: #667eea; color: white; border-color: transparent; }
  #llm-view { display: none; }
  #llm-text {
    width: 100%;
    height: 70vh;
    font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace;
    font-size: 0.9rem;
    border: 2px solid #cbd5e0;
    border-radius: 12px;
    padding: 1.5rem;
    resize: vertical;
    background: #f7fafc;
    color: #2d3748;
  }
  .empty { color: #718096; font-size: 1.1rem; padding: 2rem 0; }
</style>
</head>
<body>
<div class="container">

  <h1>arXiv: {{.Query}}</h1>
  <div class="summary">
    <strong>{{len .Papers}}</strong> papers found (mode: {{.Mode}})
  </div>

  <div class="view-toggle">
    <strong>View:</strong>
    <button class="toggle-btn active" onclick="showView('human', event)">Human</button>
    <button class="toggle-btn" onclick="showView('llm', event)">LLM</button>
  </div>

  <div id="human-view">
{{- if not .Papers}}
    <p class="empty">No results found. Try a different query.</p>
{{- end}}
{{- range .Papers}}
    <section class="paper">
      <h2>{{.Index}}. {{.Title}}</h2>
      <div class="meta">
        <span class="authors">{{.Authors}}</span>
        {{- if .Date}}
        <span class="date">{{.Date}}</span>
        {{- end}}
        {{- if .HasCitations}}
        <span class="citations">{{.Citations}} citations</span>
        {{- end}}
      </div>
      {{- if .Categories}}
      <div class="categories">
        {{- range .Categories}}
        <span class="category-tag" title="{{.Code}}">{{.Name}}</span>
        {{- end}}
      </div>
      {{- end}}
      <div class="abstract">{{.Abstract}}</div>
      {{- if or .Comment .JournalRef .DOI}}
      <div class="extras">
        {{- if .Comment}}Note: {{.Comment}}<br>{{end}}
        {{- if .JournalRef}}Journal: {{.JournalRef}}<br>{{end}}
        {{- if .DOI}}DOI: <a href="{{.DOIURL}}" target="_blank">{{.DOI}}</a>{{end}}
      </div>
      {{- end}}
      <div class="links">
        <a href="{{.AbsURL}}" target="_blank" class="btn">arXiv Page</a>
        <a href="{{.PDFURL}}" target="_blank" class="btn btn-primary">Download PDF</a>
      </div>
    </section>
{{- end}}
  </div>

  <div id="llm-view">
    <h2>LLM View</h2>
    <p>Copy the text below and paste it into your assistant of choice:</p>
    <textarea id="llm-text" readonly>{{.LLMText}}</textarea>
  </div>

</div>

<script>
function showView(which, ev) {
  document.getElementById('human-view').style.display = which === 'human' ? 'block' : 'none';
  document.getElementById('llm-view').style.display = which === 'llm' ? 'block' : 'none';
  document.querySelectorAll('.toggle-btn').forEach(function (btn) {
    btn.classList.remove('active');
  });
  ev.target.classList.add('active');
  if (which === 'llm') {
    var area = document.getElementById('llm-text');
    area.focus();
    area.select();
  }
}
</script>
</body>
</html>
`))
