package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"newscope/internal/model"
	"newscope/internal/pipeline"
)

type fakeAnalyzer struct {
	bundle   *model.ReportBundle
	err      error
	gotInput pipeline.Input
}

func (f *fakeAnalyzer) Run(ctx context.Context, input pipeline.Input) (*model.ReportBundle, error) {
	f.gotInput = input
	return f.bundle, f.err
}

func newTestAnalyzeRouter(analyzer Analyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnalyzeHandler(analyzer)
	r.POST("/analyze", h.Analyze)
	r.GET("/health", h.GetHealth)
	return r
}

func postAnalyze(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyzeMissingText(t *testing.T) {
	r := newTestAnalyzeRouter(&fakeAnalyzer{})

	w := postAnalyze(r, `{"text": ""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeInvalidBody(t *testing.T) {
	r := newTestAnalyzeRouter(&fakeAnalyzer{})

	w := postAnalyze(r, `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeSummarizationFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{err: &pipeline.SummarizationError{}}
	r := newTestAnalyzeRouter(analyzer)

	w := postAnalyze(r, `{"text": "some article"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAnalyzeSearchFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{err: &pipeline.SearchError{Failures: []string{"a", "b"}}}
	r := newTestAnalyzeRouter(analyzer)

	w := postAnalyze(r, `{"text": "some article"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAnalyzeSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{
		bundle: &model.ReportBundle{
			Summary:        "Company X reported record profits this quarter.",
			Classification: model.ClassEconomic,
			SearchQuery:    "company x profits",
			Sources: []model.SourceSection{
				{Label: "Google Scholar", Items: []model.SourceItem{{Title: "t", Link: "l", Snippet: "s"}}},
				{Label: "Naver News", Err: "HTTP 401"},
			},
			CombinedContent: "Google Scholar:\ns",
			Analysis:        "analysis text",
			Keywords:        "keyword text",
			Ticker:          &model.TickerSnapshot{Symbol: "XYZ", Current: "101.20", Name: "N/A"},
		},
	}
	r := newTestAnalyzeRouter(analyzer)

	w := postAnalyze(r, `{"text": "some article", "document_id": "doc-1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "some article", analyzer.gotInput.ArticleText)
	assert.Equal(t, "doc-1", analyzer.gotInput.DocumentID)

	var res ReportResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, "Company X reported record profits this quarter.", res.Summary)
	assert.Equal(t, "Economic", res.Classification)
	assert.Equal(t, 2, len(res.Sources))
	assert.Equal(t, "HTTP 401", res.Sources[1].Error)
	assert.NotEqual(t, nil, res.Ticker)
	assert.Equal(t, "XYZ", res.Ticker.Symbol)
	assert.Equal(t, "N/A", res.Ticker.Name)
}

func TestHealth(t *testing.T) {
	r := newTestAnalyzeRouter(&fakeAnalyzer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
