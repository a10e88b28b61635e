// Package scanner provides stateless market-scan and analysis filters
// over feed output.
package scanner

import (
	"context"
	"sort"

	"github.com/sirclawson/polymarket-cli/internal/feed"
	"github.com/sirclawson/polymarket-cli/internal/models"
)

// Default listing limits for scan and analyze.
const (
	DefaultScanLimit    = 30
	DefaultAnalyzeLimit = 100
)

// Analysis thresholds.
const (
	// SpikeRatio flags markets whose 24h volume exceeds this multiple
	// of their liquidity.
	SpikeRatio = 3.0
	// TossUpLow and TossUpHigh bound the near-50/50 price band.
	TossUpLow  = 0.35
	TossUpHigh = 0.65
	// TossUpMinVolume filters out thin toss-up markets.
	TossUpMinVolume = 50000.0
	// MaxResults caps each analysis category.
	MaxResults = 15
)

// Candidate is a market flagged by the analyzer.
type Candidate struct {
	Market     models.Market `json:"market"`
	SpikeRatio float64       `json:"spike_ratio,omitempty"`
}

// Analysis holds the categorized analyzer output.
type Analysis struct {
	VolumeSpikes []Candidate `json:"volume_spikes"`
	TossUps      []Candidate `json:"toss_ups"`
}

// Scan lists the top markets by 24h volume.
func Scan(ctx context.Context, mf feed.MarketFeed, limit int) ([]models.Market, error) {
	if limit <= 0 {
		limit = DefaultScanLimit
	}
	return mf.ListMarkets(ctx, feed.DefaultListOptions(limit))
}

// Analyze categorizes markets into volume spikes (vol/liquidity above
// SpikeRatio, sorted by ratio) and toss-ups (yes price near 50/50
// with decent volume, sorted by volume). Markets without a usable yes
// price are skipped.
func Analyze(ctx context.Context, mf feed.MarketFeed, limit int) (*Analysis, error) {
	if limit <= 0 {
		limit = DefaultAnalyzeLimit
	}
	markets, err := mf.ListMarkets(ctx, feed.DefaultListOptions(limit))
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{}
	for _, m := range markets {
		if m.YesPrice == nil {
			continue
		}
		yes := *m.YesPrice

		if m.Liquidity > 0 && m.Volume24h/m.Liquidity > SpikeRatio {
			analysis.VolumeSpikes = append(analysis.VolumeSpikes, Candidate{
				Market:     m,
				SpikeRatio: m.Volume24h / m.Liquidity,
			})
		}

		if yes >= TossUpLow && yes <= TossUpHigh && m.Volume24h > TossUpMinVolume {
			analysis.TossUps = append(analysis.TossUps, Candidate{Market: m})
		}
	}

	sort.Slice(analysis.VolumeSpikes, func(i, j int) bool {
		return analysis.VolumeSpikes[i].SpikeRatio > analysis.VolumeSpikes[j].SpikeRatio
	})
	sort.Slice(analysis.TossUps, func(i, j int) bool {
		return analysis.TossUps[i].Market.Volume24h > analysis.TossUps[j].Market.Volume24h
	})

	if len(analysis.VolumeSpikes) > MaxResults {
		analysis.VolumeSpikes = analysis.VolumeSpikes[:MaxResults]
	}
	if len(analysis.TossUps) > MaxResults {
		analysis.TossUps = analysis.TossUps[:MaxResults]
	}

	return analysis, nil
}
