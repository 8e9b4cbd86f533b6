package core

import (
	"fmt"

	"github.com/montanaflynn/stats"

	m "github.com/Dealer86/Monte-Carlo/models"
)

// Summarize reduces the terminal value population of one run to descriptive
// statistics. The count compares against the principal, so "at or above
// principal" means the trial did not lose money.
func Summarize(terminalValues []float64, principal float64) (m.SummaryStatistics, error) {
	if len(terminalValues) == 0 {
		return m.SummaryStatistics{}, fmt.Errorf("%w: no trials to summarize", ErrEmptyResultSet)
	}

	min, err := stats.Min(terminalValues)
	if err != nil {
		return m.SummaryStatistics{}, fmt.Errorf("error computing minimum terminal value: %w", err)
	}

	max, err := stats.Max(terminalValues)
	if err != nil {
		return m.SummaryStatistics{}, fmt.Errorf("error computing maximum terminal value: %w", err)
	}

	mean, err := stats.Mean(terminalValues)
	if err != nil {
		return m.SummaryStatistics{}, fmt.Errorf("error computing mean terminal value: %w", err)
	}

	atOrAbove := 0
	for _, v := range terminalValues {
		if v >= principal {
			atOrAbove++
		}
	}

	return m.SummaryStatistics{
		Min:                      min,
		Max:                      max,
		Mean:                     mean,
		Trials:                   len(terminalValues),
		TrialsAtOrAbovePrincipal: atOrAbove,
	}, nil
}

// SummarizeHistory computes the numbers shown alongside the price history
// graph: min, max, and mean price, with the dates the extremes happened on.
func SummarizeHistory(history *m.PriceHistory) (m.PriceHistorySummary, error) {
	if history == nil || len(history.Prices) == 0 {
		return m.PriceHistorySummary{}, fmt.Errorf("%w: no price points to summarize", ErrEmptyResultSet)
	}

	minIdx, maxIdx := 0, 0
	for i, p := range history.Prices {
		if p < history.Prices[minIdx] {
			minIdx = i
		}
		if p > history.Prices[maxIdx] {
			maxIdx = i
		}
	}

	mean, err := stats.Mean(history.Prices)
	if err != nil {
		return m.PriceHistorySummary{}, fmt.Errorf("error computing mean price: %w", err)
	}

	res := m.PriceHistorySummary{
		CoinID:    history.CoinID,
		Points:    len(history.Prices),
		MinPrice:  history.Prices[minIdx],
		MaxPrice:  history.Prices[maxIdx],
		MeanPrice: mean,
	}

	// timestamps are optional on a price series
	if len(history.Timestamps) == len(history.Prices) {
		res.MinPriceAt = history.Timestamps[minIdx]
		res.MaxPriceAt = history.Timestamps[maxIdx]
	}

	return res, nil
}
