package core

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	m "github.com/Dealer86/Monte-Carlo/models"
)

// RunSimulation is the single bridge between the price source and the numeric
// core: fetch history, derive return parameters, run the engine, summarize.
// The simulation is computed exactly once per request; the summary and any
// rendering downstream derive from the same frozen terminal values.
func (sc *ServiceContext) RunSimulation(config m.SimulationConfig) (*m.SimulationRunResult, error) {
	start := time.Now()

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	runId := sc.recordRunStart(config)

	log.Infof("Running simulation for %s: %v trials over a %v day horizon", config.CoinID, config.NumSimulations, config.Horizon)

	history, err := sc.PriceSource.FetchPriceHistory(sc.Context, config.CoinID, config.Years)
	if err != nil {
		err = fmt.Errorf("%w: fetching %s history: %v", ErrDataUnavailable, config.CoinID, err)
		sc.recordRunFailure(runId, start, err)
		return nil, err
	}

	if len(history.Prices) < 2 {
		err = fmt.Errorf("%w: got %d price points for %s, need at least 2", ErrDataUnavailable, len(history.Prices), config.CoinID)
		sc.recordRunFailure(runId, start, err)
		return nil, err
	}

	logReturns, err := ComputeLogReturns(history.Prices)
	if err != nil {
		sc.recordRunFailure(runId, start, err)
		return nil, err
	}

	mean, stdDev, err := MeanAndStdDev(logReturns)
	if err != nil {
		sc.recordRunFailure(runId, start, err)
		return nil, err
	}

	log.Infof("Parameterized %s from %v returns: mean %.6f, stddev %.6f", config.CoinID, len(logReturns), mean, stdDev)

	terminalValues, err := sc.RunMonteCarloSimulation(
		ReturnParameters{Mean: mean, StdDev: stdDev},
		SimulationSettings{
			Principal:  config.Principal,
			Horizon:    config.Horizon,
			Iterations: config.NumSimulations,
			Seed:       config.Seed,
		},
	)
	if err != nil {
		sc.recordRunFailure(runId, start, err)
		return nil, err
	}

	summary, err := Summarize(terminalValues, config.Principal)
	if err != nil {
		sc.recordRunFailure(runId, start, err)
		return nil, err
	}

	sc.recordRunSuccess(runId, start)
	log.Infof("Simulation for %s completed in %v: mean terminal value %.2f, %d/%d trials at or above principal",
		config.CoinID, time.Since(start), summary.Mean, summary.TrialsAtOrAbovePrincipal, summary.Trials)

	return &m.SimulationRunResult{
		Config:         config,
		TerminalValues: terminalValues,
		Summary:        summary,
	}, nil
}

func validateConfig(config m.SimulationConfig) error {
	if config.CoinID == "" {
		return fmt.Errorf("%w: coin id is required", ErrInvalidInput)
	}
	if config.Years <= 0 {
		return fmt.Errorf("%w: years of history must be positive, got %d", ErrInvalidInput, config.Years)
	}
	if config.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, config.Principal)
	}
	if config.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidInput, config.Horizon)
	}
	if config.NumSimulations <= 0 {
		return fmt.Errorf("%w: number of simulations must be positive, got %d", ErrInvalidInput, config.NumSimulations)
	}
	return nil
}

// Run history is best effort metadata: failures to record are logged and never
// fail the simulation itself.

func (sc *ServiceContext) recordRunStart(config m.SimulationConfig) int32 {
	if sc.RunHistory == nil {
		return 0
	}

	runId, err := sc.RunHistory.InsertSimulationRun(sc.Context, config.CoinID, config.Years, config.Principal, config.Horizon, config.NumSimulations, config.Seed)
	if err != nil {
		log.Warnf("Error inserting simulation run history: %v", err)
		return 0
	}
	return runId
}

func (sc *ServiceContext) recordRunSuccess(runId int32, start time.Time) {
	if sc.RunHistory == nil || runId == 0 {
		return
	}

	if err := sc.RunHistory.UpdateSimulationRunAsSuccess(sc.Context, runId, time.Since(start).Milliseconds()); err != nil {
		log.Warnf("Error marking simulation run %d as success: %v", runId, err)
	}
}

func (sc *ServiceContext) recordRunFailure(runId int32, start time.Time, runErr error) {
	if sc.RunHistory == nil || runId == 0 {
		return
	}

	if err := sc.RunHistory.UpdateSimulationRunAsFailure(sc.Context, runId, time.Since(start).Milliseconds(), runErr.Error()); err != nil {
		log.Warnf("Error marking simulation run %d as failure: %v", runId, err)
	}
}
