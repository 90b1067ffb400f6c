package search

import (
	"context"
	"fmt"
)

// Result is one entry from an external search provider.
type Result struct {
	Title   string
	Link    string
	Snippet string
}

// Connector translates a query into a call against one external provider.
// An empty result set is a successful empty slice unless the connector was
// configured to treat it as an error.
type Connector interface {
	Search(ctx context.Context, query string) ([]Result, error)
	Label() string
}

type ConnectorError struct {
	Source string
	Detail string
	Err    error
}

func (e *ConnectorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Detail)
}

func (e *ConnectorError) Unwrap() error { return e.Err }
