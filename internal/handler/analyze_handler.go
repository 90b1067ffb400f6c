package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newscope/internal/model"
	"newscope/internal/pipeline"
)

// Analyzer is the slice of the pipeline this handler needs.
type Analyzer interface {
	Run(ctx context.Context, input pipeline.Input) (*model.ReportBundle, error)
}

type AnalyzeHandler struct {
	analyzer Analyzer
}

func NewAnalyzeHandler(analyzer Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

type AnalyzeRequest struct {
	Text       string `json:"text"`
	DocumentID string `json:"document_id"`
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article text is required"})
		return
	}

	bundle, err := h.analyzer.Run(c.Request.Context(), pipeline.Input{
		ArticleText: req.Text,
		DocumentID:  req.DocumentID,
	})
	if err != nil {
		slog.Error("pipeline run failed", "error", err)

		var sumErr *pipeline.SummarizationError
		if errors.As(err, &sumErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to generate summary"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toReportResponse(bundle))
}

func (h *AnalyzeHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
