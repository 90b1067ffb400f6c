package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeIngestor struct {
	id        string
	err       error
	gotText   string
	gotSource string
}

func (f *fakeIngestor) Ingest(ctx context.Context, text, sourceID string) (string, error) {
	f.gotText = text
	f.gotSource = sourceID
	return f.id, f.err
}

func newTestDocumentRouter(ingestor Ingestor, extract ExtractFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDocumentHandler(ingestor, extract)
	r.POST("/documents", h.Upload)
	return r
}

func uploadFile(r *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", filename)
	fw.Write(content)
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)
	return w
}

func TestUploadMissingFile(t *testing.T) {
	r := newTestDocumentRouter(&fakeIngestor{}, func(data []byte) (string, error) {
		return "", nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/documents", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadExtractionFailure(t *testing.T) {
	r := newTestDocumentRouter(&fakeIngestor{}, func(data []byte) (string, error) {
		return "", errors.New("not a pdf")
	})

	w := uploadFile(r, "broken.pdf", []byte("garbage"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUploadEmptyText(t *testing.T) {
	r := newTestDocumentRouter(&fakeIngestor{}, func(data []byte) (string, error) {
		return "   ", nil
	})

	w := uploadFile(r, "empty.pdf", []byte("%PDF"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUploadIngestFailure(t *testing.T) {
	ingestor := &fakeIngestor{err: errors.New("store down")}
	r := newTestDocumentRouter(ingestor, func(data []byte) (string, error) {
		return "extracted text", nil
	})

	w := uploadFile(r, "report.pdf", []byte("%PDF"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestUploadSuccess(t *testing.T) {
	ingestor := &fakeIngestor{id: "doc-uuid-1"}
	r := newTestDocumentRouter(ingestor, func(data []byte) (string, error) {
		return "extracted report text", nil
	})

	w := uploadFile(r, "report.pdf", []byte("%PDF"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "extracted report text", ingestor.gotText)
	assert.Equal(t, "report.pdf", ingestor.gotSource)

	var res DocumentResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, "doc-uuid-1", res.DocumentID)
	assert.Equal(t, "report.pdf", res.Source)
	assert.Equal(t, len("extracted report text"), res.Characters)
}
