package charts

import (
	"errors"
	"fmt"
	"strings"

	charts "github.com/vicanso/go-charts/v2"

	ex "github.com/Dealer86/Monte-Carlo/extensions"
	m "github.com/Dealer86/Monte-Carlo/models"
)

const histogramBins = 20

// SimulationHistogramPNG renders the terminal value population of one run as a
// histogram. It only reads the frozen result, it never re-runs anything.
func SimulationHistogramPNG(res *m.SimulationRunResult) ([]byte, error) {
	if res == nil || len(res.TerminalValues) == 0 {
		return nil, errors.New("no terminal values to render")
	}

	labels, counts := binValues(res.TerminalValues, histogramBins)

	title := fmt.Sprintf("%s • %d trials • %d day horizon • principal %.2f$",
		strings.ToUpper(res.Config.CoinID), res.Summary.Trials, res.Config.Horizon, res.Config.Principal)

	painter, err := charts.BarRender([][]float64{counts},
		charts.TitleTextOptionFunc(title),
		charts.XAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("error rendering simulation histogram: %w", err)
	}

	return painter.Bytes()
}

// PriceHistoryPNG renders the historical price series as a line chart.
func PriceHistoryPNG(history *m.PriceHistory, summary m.PriceHistorySummary) ([]byte, error) {
	if history == nil || len(history.Prices) == 0 {
		return nil, errors.New("no price points to render")
	}

	labels := make([]string, len(history.Prices))
	for i := range history.Prices {
		if i < len(history.Timestamps) {
			labels[i] = ex.FmtShort(history.Timestamps[i])
		}
	}

	yMin, yMax := padRange(summary.MinPrice, summary.MaxPrice)

	title := fmt.Sprintf("%s • %d points • min %.2f$ • max %.2f$ • avg %.2f$",
		strings.ToUpper(history.CoinID), summary.Points, summary.MinPrice, summary.MaxPrice, summary.MeanPrice)

	painter, err := charts.LineRender([][]float64{history.Prices},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("error rendering price history: %w", err)
	}

	return painter.Bytes()
}

// binValues buckets values into equal width bins between the observed min and
// max. A degenerate population (all values equal) lands in a single bin.
func binValues(values []float64, bins int) ([]string, []float64) {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	width := (max - min) / float64(bins)
	if width == 0 {
		return []string{fmt.Sprintf("%.2f", min)}, []float64{float64(len(values))}
	}

	counts := make([]float64, bins)
	for _, v := range values {
		idx := ex.Min(int((v-min)/width), bins-1)
		counts[idx]++
	}

	labels := make([]string, bins)
	for i := range bins {
		midpoint := min + width*(float64(i)+0.5)
		labels[i] = fmt.Sprintf("%.0f", midpoint)
	}

	return labels, counts
}

func padRange(min, max float64) (float64, float64) {
	pad := (max - min) * 0.05
	if pad < max*0.002 {
		pad = max * 0.002
	}

	lo := min - pad
	if lo < 0 {
		lo = 0
	}

	return lo, max + pad
}
