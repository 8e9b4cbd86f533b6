package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ComputeLogReturns converts a chronological price series into per period log
// returns, ln(p[i] / p[i-1]). The first price has no return, so the output is
// one element shorter than the input.
func ComputeLogReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices to compute a return, got %d", ErrInvalidInput, len(prices))
	}

	for i, p := range prices {
		if p <= 0 {
			return nil, fmt.Errorf("%w: non-positive price %v at index %d", ErrInvalidInput, p, i)
		}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}

	return returns, nil
}

// MeanAndStdDev derives the distribution parameters for the random walk
// sampler. StdDev is the unbiased sample standard deviation (N-1 denominator),
// which needs at least 2 returns to be defined.
func MeanAndStdDev(returns []float64) (float64, float64, error) {
	if len(returns) < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 returns for a sample standard deviation, got %d", ErrInvalidInput, len(returns))
	}

	return stat.Mean(returns, nil), stat.StdDev(returns, nil), nil
}
