package market

import (
	"context"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"newscope/internal/model"
)

const notAvailable = "N/A"

// Provider fetches a live market snapshot for a ticker symbol.
type Provider interface {
	Snapshot(ctx context.Context, symbol string) (*model.TickerSnapshot, error)
}

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

// Snapshot pulls quote, profile, and recent headlines for the symbol. Each
// sub-call is best-effort: a missing piece renders as "N/A" fields rather
// than failing the snapshot, but a failed quote fails the whole lookup since
// a snapshot without prices is useless.
func (c *FinnhubClient) Snapshot(ctx context.Context, symbol string) (*model.TickerSnapshot, error) {
	quote, _, err := c.client.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}

	snap := &model.TickerSnapshot{
		Symbol:    symbol,
		Name:      notAvailable,
		Exchange:  notAvailable,
		Industry:  notAvailable,
		MarketCap: notAvailable,
		Current:   floatOrNA(quote.C),
		Open:      floatOrNA(quote.O),
		High:      floatOrNA(quote.H),
		Low:       floatOrNA(quote.L),
		PrevClose: floatOrNA(quote.Pc),
	}

	profile, _, err := c.client.CompanyProfile2(ctx).Symbol(symbol).Execute()
	if err == nil {
		snap.Name = stringOrNA(profile.Name)
		snap.Exchange = stringOrNA(profile.Exchange)
		snap.Industry = stringOrNA(profile.FinnhubIndustry)
		snap.MarketCap = floatOrNA(profile.MarketCapitalization)
	}

	to := time.Now()
	from := to.AddDate(0, 0, -7)
	news, _, err := c.client.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err == nil {
		for _, item := range news {
			if item.Headline == nil || *item.Headline == "" {
				continue
			}
			snap.Headlines = append(snap.Headlines, *item.Headline)
			if len(snap.Headlines) == 3 {
				break
			}
		}
	}

	return snap, nil
}

func floatOrNA(v *float32) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f", *v)
}

func stringOrNA(v *string) string {
	if v == nil || *v == "" {
		return notAvailable
	}
	return *v
}
