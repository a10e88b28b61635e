package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/sirclawson/polymarket-cli/internal/errors"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		Logger:  zerolog.Nop(),
	})
	return client, server
}

func TestListMarketsQueryParams(t *testing.T) {
	var gotQuery map[string]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"limit":     r.URL.Query().Get("limit"),
			"order":     r.URL.Query().Get("order"),
			"ascending": r.URL.Query().Get("ascending"),
			"active":    r.URL.Query().Get("active"),
			"closed":    r.URL.Query().Get("closed"),
		}
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	_, err := client.ListMarkets(context.Background(), DefaultListOptions(25))
	if err != nil {
		t.Fatalf("ListMarkets failed: %v", err)
	}

	want := map[string]string{
		"limit":     "25",
		"order":     "volume24hr",
		"ascending": "false",
		"active":    "true",
		"closed":    "false",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("Query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestListMarketsDecodesStringEncodedPrices(t *testing.T) {
	// Gamma serves outcomePrices as a string containing a JSON array.
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"question": "Will ETH hit $5000?",
			"slug": "will-eth-hit-5000",
			"outcomePrices": "[\"0.62\", \"0.38\"]",
			"volume24hr": 123456.78,
			"volumeNum": "999999",
			"liquidityNum": 55555
		}]`))
	})
	defer server.Close()

	markets, err := client.ListMarkets(context.Background(), DefaultListOptions(1))
	if err != nil {
		t.Fatalf("ListMarkets failed: %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("Got %d markets, want 1", len(markets))
	}

	m := markets[0]
	if m.YesPrice == nil || *m.YesPrice != 0.62 {
		t.Errorf("YesPrice = %v, want 0.62", m.YesPrice)
	}
	if m.NoPrice == nil || *m.NoPrice != 0.38 {
		t.Errorf("NoPrice = %v, want 0.38", m.NoPrice)
	}
	if m.Volume24h != 123456.78 {
		t.Errorf("Volume24h = %v", m.Volume24h)
	}
	if m.VolumeTotal != 999999 {
		t.Errorf("VolumeTotal = %v", m.VolumeTotal)
	}
	if m.Liquidity != 55555 {
		t.Errorf("Liquidity = %v", m.Liquidity)
	}
}

func TestGetMarketNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	_, err := client.GetMarket(context.Background(), "no-such-market")
	if !apperrors.Is(err, apperrors.ErrMarketNotFound) {
		t.Fatalf("Expected ErrMarketNotFound, got %v", err)
	}
}

func TestGetMarketServerError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := client.GetMarket(context.Background(), "any")
	if !apperrors.Is(err, apperrors.ErrNetworkFailure) {
		t.Fatalf("Expected ErrNetworkFailure, got %v", err)
	}

	var feedErr *apperrors.FeedError
	if !apperrors.As(err, &feedErr) || feedErr.Status != http.StatusBadGateway {
		t.Errorf("Expected FeedError with status 502, got %v", err)
	}
}

func TestGetMarketUnreachable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on

	_, err := client.GetMarket(context.Background(), "any")
	if !apperrors.Is(err, apperrors.ErrNetworkFailure) {
		t.Fatalf("Expected ErrNetworkFailure, got %v", err)
	}
}

func TestDecodeOutcomePrices(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		yes  *float64
		no   *float64
	}{
		{"literal array of strings", `["0.62", "0.38"]`, f(0.62), f(0.38)},
		{"literal array of numbers", `[0.62, 0.38]`, f(0.62), f(0.38)},
		{"string-encoded array", `"[\"0.62\", \"0.38\"]"`, f(0.62), f(0.38)},
		{"empty second slot", `["0.62", ""]`, f(0.62), nil},
		{"empty array", `[]`, nil, nil},
		{"single element", `["0.62"]`, nil, nil},
		{"garbage", `"not json"`, nil, nil},
		{"null", `null`, nil, nil},
		{"missing", ``, nil, nil},
		{"non-numeric slots", `["a", "b"]`, nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			yes, no := decodeOutcomePrices(json.RawMessage(tc.raw))
			if !priceEqual(yes, tc.yes) {
				t.Errorf("yes = %v, want %v", deref(yes), deref(tc.yes))
			}
			if !priceEqual(no, tc.no) {
				t.Errorf("no = %v, want %v", deref(no), deref(tc.no))
			}
		})
	}
}

func f(v float64) *float64 { return &v }

func priceEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
