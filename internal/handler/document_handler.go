package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Ingestor is the slice of the retrieval store this handler needs.
type Ingestor interface {
	Ingest(ctx context.Context, text, sourceID string) (string, error)
}

// ExtractFunc turns an uploaded file into plain text.
type ExtractFunc func(data []byte) (string, error)

type DocumentHandler struct {
	ingestor Ingestor
	extract  ExtractFunc
}

func NewDocumentHandler(ingestor Ingestor, extract ExtractFunc) *DocumentHandler {
	return &DocumentHandler{ingestor: ingestor, extract: extract}
}

type DocumentResponse struct {
	DocumentID string `json:"document_id"`
	Source     string `json:"source"`
	Characters int    `json:"characters"`
}

// Upload extracts text from a PDF and ingests it into the retrieval store.
// Re-uploading a file with the same name overwrites the stored document.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A PDF file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	text, err := h.extract(data)
	if err != nil {
		slog.Error("pdf extraction failed", "file", header.Filename, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to extract text from PDF"})
		return
	}
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "PDF contains no extractable text"})
		return
	}

	id, err := h.ingestor.Ingest(c.Request.Context(), text, header.Filename)
	if err != nil {
		slog.Error("document ingest failed", "file", header.Filename, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to store document"})
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{
		DocumentID: id,
		Source:     header.Filename,
		Characters: len(text),
	})
}
