package pipeline

import (
	"fmt"
	"strings"
)

// SummarizationError means the local model produced nothing usable. Fatal to
// the run, not the process.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("summarization failed: %v", e.Err)
	}
	return "summarization failed: model returned an empty summary"
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// SearchError means both primary search sources failed, so there is nothing
// to assemble a report from.
type SearchError struct {
	Failures []string
}

func (e *SearchError) Error() string {
	return "primary search sources failed: " + strings.Join(e.Failures, "; ")
}

// EnrichmentError is a scoped failure of the market-data or retrieval step.
// It is recorded in the bundle, never returned from Run.
type EnrichmentError struct {
	Kind string
	Err  error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("%s enrichment failed: %v", e.Kind, e.Err)
}

func (e *EnrichmentError) Unwrap() error { return e.Err }
