package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	m "github.com/Dealer86/Monte-Carlo/models"
)

func testServer(source PriceHistorySource) *httptest.Server {
	sc := &ServiceContext{Context: context.Background(), PriceSource: source}
	return httptest.NewServer(GetHttpServer(sc).Handler)
}

func TestPingEndpoint(t *testing.T) {
	server := testServer(&stubPriceSource{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/ping")
	if err != nil {
		t.Fatalf("GET /api/ping: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSimulationEndpointStatusMapping(t *testing.T) {
	cases := map[string]struct {
		source   *stubPriceSource
		body     string
		expected int
	}{
		"happy path": {
			source:   &stubPriceSource{history: &m.PriceHistory{CoinID: "bitcoin", Prices: fixturePrices(100)}},
			body:     `{"coinId":"bitcoin","years":1,"principal":1000,"horizon":10,"numSimulations":50,"seed":7}`,
			expected: http.StatusOK,
		},
		"invalid config": {
			source:   &stubPriceSource{history: &m.PriceHistory{CoinID: "bitcoin", Prices: fixturePrices(100)}},
			body:     `{"coinId":"bitcoin","years":1,"principal":1000,"horizon":0,"numSimulations":50}`,
			expected: http.StatusBadRequest,
		},
		"malformed json": {
			source:   &stubPriceSource{},
			body:     `{"coinId":`,
			expected: http.StatusBadRequest,
		},
		"data unavailable": {
			source:   &stubPriceSource{err: ErrDataUnavailable},
			body:     `{"coinId":"nosuchcoin","years":1,"principal":1000,"horizon":10,"numSimulations":50}`,
			expected: http.StatusBadGateway,
		},
	}

	for name, tc := range cases {
		server := testServer(tc.source)

		resp, err := http.Post(server.URL+"/api/simulations", "application/json", strings.NewReader(tc.body))
		if err != nil {
			t.Fatalf("%s: POST /api/simulations: %v", name, err)
		}
		resp.Body.Close()

		if resp.StatusCode != tc.expected {
			t.Errorf("%s: expected status %d, got %d", name, tc.expected, resp.StatusCode)
		}

		server.Close()
	}
}

func TestStatusForError(t *testing.T) {
	if got := statusForError(ErrInvalidInput); got != http.StatusBadRequest {
		t.Errorf("invalid input: expected 400, got %d", got)
	}
	if got := statusForError(ErrDataUnavailable); got != http.StatusBadGateway {
		t.Errorf("data unavailable: expected 502, got %d", got)
	}
	if got := statusForError(context.DeadlineExceeded); got != http.StatusInternalServerError {
		t.Errorf("unknown error: expected 500, got %d", got)
	}
}
