package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	c "github.com/Dealer86/Monte-Carlo/api"
	m "github.com/Dealer86/Monte-Carlo/models"
)

// public
const (
	HostDefault = "api.coingecko.com"
)

// private
const (
	vsCurrencyDefault = "usd"
	daysPerYear       = 365

	// api request elements
	marketChartPathFormat = "api/v3/coins/%s/market_chart"
	days                  = "days"
	vsCurrency            = "vs_currency"

	requestTimeout = time.Second * 10
)

// The three distinct failure kinds the market chart fetch can signal. The
// simulation core treats them all as data unavailable and never retries;
// callers that want retry policy match on these.
var (
	ErrRequestFailed    = errors.New("coingecko request failed")
	ErrBadStatus        = errors.New("coingecko returned a non-success status")
	ErrMalformedPayload = errors.New("coingecko returned an unexpected payload")
)

type CoinGeckoClient struct {
	*c.Client
}

func GetClient() CoinGeckoClient {
	return CoinGeckoClient{
		c.ClientFactory(HostDefault, map[string]string{vsCurrency: vsCurrencyDefault}, requestTimeout),
	}
}

// marketChartResponse is the shape of /coins/{id}/market_chart. Each entry is
// a [timestamp in milliseconds, price] pair.
type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// FetchPriceHistory gets years worth of daily prices for a coin, oldest first.
// https://docs.coingecko.com/reference/coins-id-market-chart
func (cgc CoinGeckoClient) FetchPriceHistory(ctx context.Context, coinID string, years int) (*m.PriceHistory, error) {
	if coinID == "" {
		return nil, fmt.Errorf("%w: coin id is required", ErrRequestFailed)
	}
	if years <= 0 {
		return nil, fmt.Errorf("%w: years must be positive, got %d", ErrRequestFailed, years)
	}

	endpoint := cgc.Client.BuildRequestPath(fmt.Sprintf(marketChartPathFormat, coinID), map[string]string{
		days: strconv.Itoa(years * daysPerYear),
	})

	response, err := cgc.Client.Connection.Request(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: requesting market chart for %s: %v", ErrRequestFailed, coinID, err)
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d fetching market chart for %s", ErrBadStatus, response.StatusCode, coinID)
	}

	return parseMarketChart(response.Body, coinID)
}

func parseMarketChart(reader io.Reader, coinID string) (*m.PriceHistory, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrRequestFailed, err)
	}

	var raw marketChartResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling market chart: %v", ErrMalformedPayload, err)
	}

	if len(raw.Prices) == 0 {
		return nil, fmt.Errorf("%w: no price entries for %s", ErrMalformedPayload, coinID)
	}

	history := &m.PriceHistory{
		CoinID:     coinID,
		Timestamps: make([]time.Time, len(raw.Prices)),
		Prices:     make([]float64, len(raw.Prices)),
	}

	for i, entry := range raw.Prices {
		if len(entry) != 2 {
			return nil, fmt.Errorf("%w: price entry %d has %d elements, expected [timestamp, price]", ErrMalformedPayload, i, len(entry))
		}

		history.Timestamps[i] = time.UnixMilli(int64(entry[0])).UTC()
		history.Prices[i] = entry[1]
	}

	return history, nil
}
