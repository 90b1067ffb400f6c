package model

const (
	ClassSocial        = "Social"
	ClassTechnological = "Technological"
	ClassEconomic      = "Economic"
	ClassEnvironmental = "Environmental"
	ClassPolitical     = "Political"
)

// Classes lists the STEEP categories in canonical order.
var Classes = []string{ClassSocial, ClassTechnological, ClassEconomic, ClassEnvironmental, ClassPolitical}

type SourceItem struct {
	Title   string
	Link    string
	Snippet string
}

// SourceSection is one connector's contribution to the report. A failed or
// empty source keeps its section with Err set and no items.
type SourceSection struct {
	Label string
	Items []SourceItem
	Err   string
}

// TickerSnapshot carries pre-rendered market fields; every field the
// provider did not return reads "N/A".
type TickerSnapshot struct {
	Symbol    string
	Name      string
	Exchange  string
	Industry  string
	MarketCap string
	Current   string
	Open      string
	High      string
	Low       string
	PrevClose string
	Headlines []string
}

// StepError records a scoped failure that did not abort the run.
type StepError struct {
	Step    string
	Message string
}

// ReportBundle is the complete result of one pipeline run. Fields past
// CombinedContent may be empty when their step failed; Errors says which.
type ReportBundle struct {
	Summary         string
	Classification  string
	SearchQuery     string
	Sources         []SourceSection
	CombinedContent string
	Analysis        string
	Keywords        string
	Ticker          *TickerSnapshot
	GroundedReport  string
	Errors          []StepError
}
