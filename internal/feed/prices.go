package feed

import (
	"encoding/json"
	"strconv"

	"github.com/sirclawson/polymarket-cli/internal/models"
)

// marketRecord mirrors the Gamma API wire shape. The outcomePrices
// field arrives either as a JSON array or as a string containing an
// encoded JSON array, so it is kept raw and decoded separately.
type marketRecord struct {
	Question      string          `json:"question"`
	Slug          string          `json:"slug"`
	OutcomePrices json.RawMessage `json:"outcomePrices"`
	Volume24h     flexFloat       `json:"volume24hr"`
	VolumeNum     flexFloat       `json:"volumeNum"`
	LiquidityNum  flexFloat       `json:"liquidityNum"`
	Active        bool            `json:"active"`
	Closed        bool            `json:"closed"`
}

func (r *marketRecord) toMarket() models.Market {
	yes, no := decodeOutcomePrices(r.OutcomePrices)
	return models.Market{
		Question:    r.Question,
		Slug:        r.Slug,
		YesPrice:    yes,
		NoPrice:     no,
		Volume24h:   float64(r.Volume24h),
		VolumeTotal: float64(r.VolumeNum),
		Liquidity:   float64(r.LiquidityNum),
		Active:      r.Active,
		Closed:      r.Closed,
	}
}

// decodeOutcomePrices extracts the Yes/No probability pair from the
// raw outcomePrices field. A parse failure yields unknown prices
// (nil, nil) rather than an error: markets without two valid outcome
// prices are not failures, they just have no usable price.
func decodeOutcomePrices(raw json.RawMessage) (yes, no *float64) {
	if len(raw) == 0 {
		return nil, nil
	}

	data := raw
	// Tolerate the string-encoded form: "[\"0.62\", \"0.38\"]".
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		data = json.RawMessage(encoded)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil
	}
	if len(items) < 2 {
		return nil, nil
	}

	yes = parsePrice(items[0])
	no = parsePrice(items[1])
	if yes == nil {
		return nil, nil
	}
	return yes, no
}

// parsePrice decodes a single outcome price, which may be a JSON
// number or a numeric string. Empty or invalid slots yield nil.
func parsePrice(raw json.RawMessage) *float64 {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return &num
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// flexFloat decodes a JSON field that may arrive as a number or as a
// numeric string. Missing or malformed values decode to zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat(num)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}
