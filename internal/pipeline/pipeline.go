package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"newscope/internal/model"
	"newscope/pkg/search"
)

// Ports the orchestrator depends on. Constructed once at startup and passed
// in; the pipeline never builds clients itself.
type (
	Summarizer interface {
		Summarize(ctx context.Context, text string) (string, error)
	}

	Gateway interface {
		Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
	}

	MarketData interface {
		Snapshot(ctx context.Context, symbol string) (*model.TickerSnapshot, error)
	}

	Retriever interface {
		QueryTopK(ctx context.Context, text string, k int) ([]string, error)
	}
)

// Source pairs a connector with how many of its results feed the combined
// content. The first two configured sources are primary: the run aborts only
// when both of them fail.
type Source struct {
	Connector search.Connector
	MaxItems  int
}

// Options tune the run without touching the wiring.
type Options struct {
	ContentBudget int // byte cap on combined content before synthesis
	RetrievalTopK int
}

// Input for one run. DocumentID is set when the user uploaded a document
// earlier; it only gates the retrieval-augmented branch.
type Input struct {
	ArticleText string
	DocumentID  string
}

type Pipeline struct {
	summarizer Summarizer
	gateway    Gateway
	sources    []Source
	market     MarketData
	retriever  Retriever
	opts       Options
}

func New(summarizer Summarizer, gateway Gateway, sources []Source, market MarketData, retriever Retriever, opts Options) *Pipeline {
	if opts.ContentBudget <= 0 {
		opts.ContentBudget = 4000
	}
	if opts.RetrievalTopK <= 0 {
		opts.RetrievalTopK = 3
	}
	return &Pipeline{
		summarizer: summarizer,
		gateway:    gateway,
		sources:    sources,
		market:     market,
		retriever:  retriever,
		opts:       opts,
	}
}

// Run executes the whole pipeline for one article. Steps 1-5 abort with an
// error; later steps record scoped failures in the bundle and keep whatever
// was already produced.
func (p *Pipeline) Run(ctx context.Context, input Input) (*model.ReportBundle, error) {
	summary, err := p.summarizer.Summarize(ctx, input.ArticleText)
	if err != nil {
		return nil, &SummarizationError{Err: err}
	}
	if strings.TrimSpace(summary) == "" {
		return nil, &SummarizationError{}
	}

	bundle := &model.ReportBundle{Summary: summary}

	classification, err := p.gateway.Complete(ctx, classifySystemPrompt, fmt.Sprintf(classifyUserFormat, summary), 10)
	if err != nil {
		return nil, fmt.Errorf("classifying summary: %w", err)
	}
	bundle.Classification = normalizeClass(classification)

	query, err := p.gateway.Complete(ctx, querySystemPrompt, fmt.Sprintf(queryUserFormat, summary), 100)
	if err != nil {
		return nil, fmt.Errorf("generating search query: %w", err)
	}
	bundle.SearchQuery = query

	sections, err := p.fanOut(ctx, query)
	if err != nil {
		return nil, err
	}
	bundle.Sources = sections
	bundle.CombinedContent = p.assemble(sections)

	p.synthesize(ctx, bundle)
	p.enrich(ctx, bundle, input.DocumentID != "")

	return bundle, nil
}

// fanOut queries every connector concurrently and aggregates the results in
// declaration order. Only the failure of both primary sources aborts.
func (p *Pipeline) fanOut(ctx context.Context, query string) ([]model.SourceSection, error) {
	sections := make([]model.SourceSection, len(p.sources))

	var wg sync.WaitGroup
	for i, src := range p.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			section := model.SourceSection{Label: src.Connector.Label()}
			results, err := src.Connector.Search(ctx, query)
			if err != nil {
				slog.Warn("search source failed", "source", section.Label, "error", err)
				section.Err = err.Error()
			} else {
				for _, r := range results {
					section.Items = append(section.Items, model.SourceItem{
						Title:   r.Title,
						Link:    r.Link,
						Snippet: r.Snippet,
					})
				}
			}
			sections[i] = section
		}(i, src)
	}
	wg.Wait()

	var primaryFailures []string
	for i := 0; i < len(sections) && i < 2; i++ {
		if sections[i].Err != "" {
			primaryFailures = append(primaryFailures, sections[i].Err)
		}
	}
	if len(primaryFailures) == 2 {
		return nil, &SearchError{Failures: primaryFailures}
	}

	return sections, nil
}

func (p *Pipeline) assemble(sections []model.SourceSection) string {
	caps := make([]int, len(p.sources))
	for i, src := range p.sources {
		caps[i] = src.MaxItems
	}
	return assembleContent(sections, caps, p.opts.ContentBudget)
}

// synthesize runs the analysis and keyword calls. Each failure is scoped: it
// lands in bundle.Errors and leaves the other results alone.
func (p *Pipeline) synthesize(ctx context.Context, bundle *model.ReportBundle) {
	analysis, err := p.gateway.Complete(ctx, synthesisSystemPrompt,
		fmt.Sprintf(synthesisUserFormat, bundle.Summary, bundle.CombinedContent), 1000)
	if err != nil {
		bundle.Errors = append(bundle.Errors, model.StepError{Step: "analysis", Message: err.Error()})
	} else {
		bundle.Analysis = analysis
	}

	keywords, err := p.gateway.Complete(ctx, keywordSystemPrompt,
		fmt.Sprintf(keywordUserFormat, bundle.Summary), 300)
	if err != nil {
		bundle.Errors = append(bundle.Errors, model.StepError{Step: "keywords", Message: err.Error()})
	} else {
		bundle.Keywords = keywords
	}
}

// enrich applies the decision table over (classification, hasDocument):
// Economic gets a market snapshot, anything else with an uploaded document
// gets a retrieval-grounded report, anything else gets nothing.
func (p *Pipeline) enrich(ctx context.Context, bundle *model.ReportBundle, hasDocument bool) {
	switch {
	case bundle.Classification == model.ClassEconomic:
		p.enrichMarket(ctx, bundle)
	case hasDocument:
		p.enrichGrounded(ctx, bundle)
	}
}

func (p *Pipeline) enrichMarket(ctx context.Context, bundle *model.ReportBundle) {
	if p.market == nil {
		bundle.Errors = append(bundle.Errors, model.StepError{Step: "market", Message: "market data provider not configured"})
		return
	}

	ticker, err := p.gateway.Complete(ctx, tickerSystemPrompt,
		fmt.Sprintf(tickerUserFormat, bundle.Summary), 10)
	if err != nil {
		enrichErr := &EnrichmentError{Kind: "market", Err: err}
		bundle.Errors = append(bundle.Errors, model.StepError{Step: "market", Message: enrichErr.Error()})
		return
	}

	symbol := cleanTicker(ticker)
	if symbol == "" {
		bundle.Errors = append(bundle.Errors, model.StepError{Step: "market", Message: fmt.Sprintf("no usable ticker in %q", ticker)})
		return
	}

	snapshot, err := p.market.Snapshot(ctx, symbol)
	if err != nil {
		enrichErr := &EnrichmentError{Kind: "market", Err: err}
		bundle.Errors = append(bundle.Errors, model.StepError{Step: "market", Message: enrichErr.Error()})
		return
	}
	bundle.Ticker = snapshot
}

func (p *Pipeline) enrichGrounded(ctx context.Context, bundle *model.ReportBundle) {
	if p.retriever == nil {
		bundle.Errors = append(bundle.Errors, model.StepError{Step: "grounded_report", Message: "retrieval store not configured"})
		return
	}

	passages, err := p.retriever.QueryTopK(ctx, bundle.Summary, p.opts.RetrievalTopK)
	if err != nil {
		enrichErr := &EnrichmentError{Kind: "retrieval", Err: err}
		bundle.Errors = append(bundle.Errors, model.StepError{Step: "grounded_report", Message: enrichErr.Error()})
		return
	}

	report, err := p.gateway.Complete(ctx, groundedSystemPrompt,
		fmt.Sprintf(groundedUserFormat, formatMaterials(passages), bundle.Summary), 1000)
	if err != nil {
		enrichErr := &EnrichmentError{Kind: "retrieval", Err: err}
		bundle.Errors = append(bundle.Errors, model.StepError{Step: "grounded_report", Message: enrichErr.Error()})
		return
	}
	bundle.GroundedReport = report
}

// normalizeClass maps a free-form model answer onto a canonical STEEP label.
// Unrecognized answers pass through trimmed; only the Economic comparison
// downstream cares.
func normalizeClass(answer string) string {
	trimmed := strings.TrimSpace(answer)
	for _, class := range model.Classes {
		if strings.Contains(strings.ToLower(trimmed), strings.ToLower(class)) {
			return class
		}
	}
	return trimmed
}

// cleanTicker reduces a model answer to a plausible ticker symbol.
func cleanTicker(answer string) string {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(answer)))
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, r := range fields[0] {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' {
			sb.WriteRune(r)
		}
	}
	symbol := sb.String()
	if len(symbol) > 6 {
		symbol = symbol[:6]
	}
	return symbol
}
