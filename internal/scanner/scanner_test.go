package scanner

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirclawson/polymarket-cli/internal/feed"
	"github.com/sirclawson/polymarket-cli/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

type listFeed struct {
	markets  []models.Market
	lastOpts feed.ListOptions
}

func (f *listFeed) ListMarkets(ctx context.Context, opts feed.ListOptions) ([]models.Market, error) {
	f.lastOpts = opts
	return f.markets, nil
}

func (f *listFeed) GetMarket(ctx context.Context, slug string) (*models.Market, error) {
	return nil, fmt.Errorf("not implemented")
}

func TestScanUsesDefaultLimit(t *testing.T) {
	f := &listFeed{}
	if _, err := Scan(context.Background(), f, 0); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if f.lastOpts.Limit != DefaultScanLimit {
		t.Errorf("Limit = %d, want %d", f.lastOpts.Limit, DefaultScanLimit)
	}
	if f.lastOpts.Order != "volume24hr" || f.lastOpts.Ascending {
		t.Errorf("Unexpected ordering: %+v", f.lastOpts)
	}
	if !f.lastOpts.ActiveOnly || f.lastOpts.Closed {
		t.Errorf("Expected active-only listing: %+v", f.lastOpts)
	}
}

func TestAnalyzeCategorizes(t *testing.T) {
	f := &listFeed{markets: []models.Market{
		// Spike: 100k vol on 10k liquidity (10x).
		{Slug: "spike", YesPrice: floatPtr(0.80), Volume24h: 100000, Liquidity: 10000},
		// Toss-up: 50% with 60k volume.
		{Slug: "tossup", YesPrice: floatPtr(0.50), Volume24h: 60000, Liquidity: 100000},
		// Both: 40% with high spike ratio and high volume.
		{Slug: "both", YesPrice: floatPtr(0.40), Volume24h: 200000, Liquidity: 20000},
		// Neither: calm price, low spike ratio.
		{Slug: "neither", YesPrice: floatPtr(0.90), Volume24h: 10000, Liquidity: 50000},
		// Toss-up priced but too thin to matter.
		{Slug: "thin", YesPrice: floatPtr(0.45), Volume24h: 1000, Liquidity: 1000},
		// No usable price: always skipped.
		{Slug: "unpriced", Volume24h: 500000, Liquidity: 1},
	}}

	analysis, err := Analyze(context.Background(), f, 100)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	gotSpikes := slugs(analysis.VolumeSpikes)
	if len(gotSpikes) != 2 || !contains(gotSpikes, "spike") || !contains(gotSpikes, "both") {
		t.Fatalf("VolumeSpikes = %v, want spike and both", gotSpikes)
	}

	gotTossUps := slugs(analysis.TossUps)
	if len(gotTossUps) != 2 || gotTossUps[0] != "both" || gotTossUps[1] != "tossup" {
		t.Errorf("TossUps = %v, want [both tossup]", gotTossUps)
	}
}

func TestAnalyzeSortsSpikesByRatio(t *testing.T) {
	f := &listFeed{markets: []models.Market{
		{Slug: "low", YesPrice: floatPtr(0.5), Volume24h: 40000, Liquidity: 10000},   // 4x
		{Slug: "high", YesPrice: floatPtr(0.5), Volume24h: 200000, Liquidity: 10000}, // 20x
		{Slug: "mid", YesPrice: floatPtr(0.5), Volume24h: 80000, Liquidity: 10000},   // 8x
	}}

	analysis, err := Analyze(context.Background(), f, 100)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	got := slugs(analysis.VolumeSpikes)
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("VolumeSpikes order = %v, want %v", got, want)
		}
	}
}

func TestAnalyzeCapsResults(t *testing.T) {
	var markets []models.Market
	for i := 0; i < 40; i++ {
		markets = append(markets, models.Market{
			Slug:      fmt.Sprintf("m%d", i),
			YesPrice:  floatPtr(0.5),
			Volume24h: 100000 + float64(i),
			Liquidity: 1000,
		})
	}
	f := &listFeed{markets: markets}

	analysis, err := Analyze(context.Background(), f, 100)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(analysis.VolumeSpikes) != MaxResults {
		t.Errorf("VolumeSpikes = %d entries, want %d", len(analysis.VolumeSpikes), MaxResults)
	}
	if len(analysis.TossUps) != MaxResults {
		t.Errorf("TossUps = %d entries, want %d", len(analysis.TossUps), MaxResults)
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func slugs(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Market.Slug
	}
	return out
}
