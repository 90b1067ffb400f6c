package handler

import "newscope/internal/model"

type SourceItemResponse struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type SourceSectionResponse struct {
	Label string               `json:"label"`
	Items []SourceItemResponse `json:"items"`
	Error string               `json:"error,omitempty"`
}

type TickerSnapshotResponse struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Exchange  string   `json:"exchange"`
	Industry  string   `json:"industry"`
	MarketCap string   `json:"market_cap"`
	Current   string   `json:"current"`
	Open      string   `json:"open"`
	High      string   `json:"high"`
	Low       string   `json:"low"`
	PrevClose string   `json:"prev_close"`
	Headlines []string `json:"headlines,omitempty"`
}

type StepErrorResponse struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

type ReportResponse struct {
	Summary         string                  `json:"summary"`
	Classification  string                  `json:"classification"`
	SearchQuery     string                  `json:"search_query"`
	Sources         []SourceSectionResponse `json:"sources"`
	CombinedContent string                  `json:"combined_content"`
	Analysis        string                  `json:"analysis,omitempty"`
	Keywords        string                  `json:"keywords,omitempty"`
	Ticker          *TickerSnapshotResponse `json:"ticker,omitempty"`
	GroundedReport  string                  `json:"grounded_report,omitempty"`
	Errors          []StepErrorResponse     `json:"errors,omitempty"`
}

func toReportResponse(b *model.ReportBundle) ReportResponse {
	res := ReportResponse{
		Summary:         b.Summary,
		Classification:  b.Classification,
		SearchQuery:     b.SearchQuery,
		CombinedContent: b.CombinedContent,
		Analysis:        b.Analysis,
		Keywords:        b.Keywords,
		GroundedReport:  b.GroundedReport,
		Sources:         []SourceSectionResponse{},
	}

	for _, s := range b.Sources {
		section := SourceSectionResponse{Label: s.Label, Error: s.Err, Items: []SourceItemResponse{}}
		for _, item := range s.Items {
			section.Items = append(section.Items, SourceItemResponse{
				Title:   item.Title,
				Link:    item.Link,
				Snippet: item.Snippet,
			})
		}
		res.Sources = append(res.Sources, section)
	}

	if b.Ticker != nil {
		res.Ticker = &TickerSnapshotResponse{
			Symbol:    b.Ticker.Symbol,
			Name:      b.Ticker.Name,
			Exchange:  b.Ticker.Exchange,
			Industry:  b.Ticker.Industry,
			MarketCap: b.Ticker.MarketCap,
			Current:   b.Ticker.Current,
			Open:      b.Ticker.Open,
			High:      b.Ticker.High,
			Low:       b.Ticker.Low,
			PrevClose: b.Ticker.PrevClose,
			Headlines: b.Ticker.Headlines,
		}
	}

	for _, e := range b.Errors {
		res.Errors = append(res.Errors, StepErrorResponse{Step: e.Step, Message: e.Message})
	}

	return res
}
