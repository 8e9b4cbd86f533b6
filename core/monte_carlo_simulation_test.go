package core

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

func TestJobsAndWorkersPartitioning(t *testing.T) {
	jobs, nWorkers := GetNumberOfJobsAndWorkers(10_000, 1_000, 4)

	if len(jobs) != 10 {
		t.Errorf("expected 10 jobs, got %d", len(jobs))
	}
	if nWorkers != 4 {
		t.Errorf("expected 4 workers, got %d", nWorkers)
	}
	for i := 1; i < len(jobs); i++ {
		if jobs[i].start != jobs[i-1].end {
			t.Errorf("job %d starts at %d but job %d ends at %d", i, jobs[i].start, i-1, jobs[i-1].end)
		}
	}

	// last batch truncates to the iteration count
	jobs, nWorkers = GetNumberOfJobsAndWorkers(3_500, 1_000, 4)

	if len(jobs) != 4 {
		t.Errorf("expected 4 jobs, got %d", len(jobs))
	}
	if nWorkers != 4 {
		t.Errorf("expected 4 workers, got %d", nWorkers)
	}
	if jobs[3].end != 3_500 {
		t.Errorf("expected last job to end at 3_500 (exclusive), got %d", jobs[3].end)
	}

	// fewer iterations than one batch means one worker
	jobs, nWorkers = GetNumberOfJobsAndWorkers(10, 1_000, 4)

	if len(jobs) != 1 {
		t.Errorf("expected 1 job, got %d", len(jobs))
	}
	if nWorkers != 1 {
		t.Errorf("expected 1 worker, got %d", nWorkers)
	}
	if jobs[0].start != 0 || jobs[0].end != 10 {
		t.Errorf("expected job bounds [0, 10), got [%d, %d)", jobs[0].start, jobs[0].end)
	}
}

func TestRunMonteCarloSimulationTrialCount(t *testing.T) {
	sc := &ServiceContext{Context: context.Background()}
	params := ReturnParameters{Mean: 0.0005, StdDev: 0.02}

	for _, iterations := range []int{1, 7, 100, 2_500} {
		res, err := sc.RunMonteCarloSimulation(params, SimulationSettings{
			Principal:  1_000,
			Horizon:    30,
			Iterations: iterations,
			Seed:       42,
		})
		if err != nil {
			t.Fatalf("RunMonteCarloSimulation with %d iterations: %v", iterations, err)
		}
		if len(res) != iterations {
			t.Errorf("expected %d terminal values, got %d", iterations, len(res))
		}
		for i, v := range res {
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("terminal value[%d] is not a positive real: %v", i, v)
			}
		}
	}
}

func TestRunMonteCarloSimulationDegenerateStdDev(t *testing.T) {
	sc := &ServiceContext{Context: context.Background()}

	// zero stddev and zero mean leaves every trial at the principal exactly
	res, err := sc.RunMonteCarloSimulation(
		ReturnParameters{Mean: 0, StdDev: 0},
		SimulationSettings{Principal: 1_000, Horizon: 252, Iterations: 50, Seed: 1},
	)
	if err != nil {
		t.Fatalf("RunMonteCarloSimulation: %v", err)
	}
	for i, v := range res {
		if v != 1_000 {
			t.Errorf("trial %d: expected exactly 1000, got %v", i, v)
		}
	}

	// zero stddev with a drift compounds deterministically
	mean := math.Log(1.01)
	res, err = sc.RunMonteCarloSimulation(
		ReturnParameters{Mean: mean, StdDev: 0},
		SimulationSettings{Principal: 1_000, Horizon: 10, Iterations: 5, Seed: 1},
	)
	if err != nil {
		t.Fatalf("RunMonteCarloSimulation: %v", err)
	}
	expected := 1_000 * math.Pow(1.01, 10)
	for i, v := range res {
		if math.Abs(v-expected) > 1e-9 {
			t.Errorf("trial %d: expected %v, got %v", i, expected, v)
		}
	}
}

// TestRunMonteCarloSimulationReproducibleWithSeed runs enough iterations to
// spread batches across workers and checks that a fixed seed reproduces the
// exact output no matter which worker picked up which batch.
func TestRunMonteCarloSimulationReproducibleWithSeed(t *testing.T) {
	sc := &ServiceContext{Context: context.Background()}
	params := ReturnParameters{Mean: 0.0003, StdDev: 0.015}
	settings := SimulationSettings{
		Principal:  1_000,
		Horizon:    20,
		Iterations: 25_000, // > BatchSize to utilize multiple workers
		Seed:       42,
	}

	start := time.Now()
	first, err := sc.RunMonteCarloSimulation(params, settings)
	t.Logf("RunMonteCarloSimulation (%d iterations): %v", settings.Iterations, time.Since(start))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	second, err := sc.RunMonteCarloSimulation(params, settings)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("trial %d differs between runs with the same seed: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRunMonteCarloSimulationInjectedSource(t *testing.T) {
	sc := &ServiceContext{Context: context.Background()}
	params := ReturnParameters{Mean: 0, StdDev: 0.01}
	settings := SimulationSettings{
		Principal:  500,
		Horizon:    10,
		Iterations: 100,
		SourceFactory: func(stream uint64) rand.Source {
			return rand.NewPCG(7, stream)
		},
	}

	first, err := sc.RunMonteCarloSimulation(params, settings)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	second, err := sc.RunMonteCarloSimulation(params, settings)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("trial %d differs between runs with the same injected source: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRunMonteCarloSimulationInvalidInput(t *testing.T) {
	sc := &ServiceContext{Context: context.Background()}

	cases := map[string]struct {
		params   ReturnParameters
		settings SimulationSettings
	}{
		"zero horizon":       {ReturnParameters{0, 0.01}, SimulationSettings{Principal: 1000, Horizon: 0, Iterations: 10}},
		"zero iterations":    {ReturnParameters{0, 0.01}, SimulationSettings{Principal: 1000, Horizon: 10, Iterations: 0}},
		"zero principal":     {ReturnParameters{0, 0.01}, SimulationSettings{Principal: 0, Horizon: 10, Iterations: 10}},
		"negative stddev":    {ReturnParameters{0, -0.01}, SimulationSettings{Principal: 1000, Horizon: 10, Iterations: 10}},
		"negative trials":    {ReturnParameters{0, 0.01}, SimulationSettings{Principal: 1000, Horizon: 10, Iterations: -5}},
		"negative principal": {ReturnParameters{0, 0.01}, SimulationSettings{Principal: -1, Horizon: 10, Iterations: 10}},
	}

	for name, tc := range cases {
		if _, err := sc.RunMonteCarloSimulation(tc.params, tc.settings); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestRunMonteCarloSimulationCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := &ServiceContext{Context: ctx}
	_, err := sc.RunMonteCarloSimulation(
		ReturnParameters{Mean: 0, StdDev: 0.01},
		SimulationSettings{Principal: 1000, Horizon: 100, Iterations: 50_000, Seed: 3},
	)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
