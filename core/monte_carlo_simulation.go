package core

import (
	"fmt"
	"math"
	"math/rand/v2"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	ex "github.com/Dealer86/Monte-Carlo/extensions"
)

const (
	Workers   = 8
	BatchSize = 10_000
)

// ReturnParameters are the sample statistics of the historical log returns,
// used to parameterize the normal sampler for every trial.
type ReturnParameters struct {
	Mean   float64
	StdDev float64
}

// SimulationSettings control one engine run.
type SimulationSettings struct {
	Principal  float64
	Horizon    int // days each trial projects forward
	Iterations int
	Seed       int64 // 0 draws a fresh seed per run

	// SourceFactory supplies the random stream for a batch. Leave nil for the
	// default seeded PCG streams; tests inject their own to pin exact outputs.
	SourceFactory func(stream uint64) rand.Source
}

type job struct {
	id    int
	start int
	end   int
}

// GetNumberOfJobsAndWorkers divides the trial count into batches and decides
// how many workers to run given the batch size and the worker cap.
func GetNumberOfJobsAndWorkers(iterations int, batchSize int, workers int) ([]job, int) {
	nJobs := int(math.Ceil(float64(iterations) / float64(batchSize)))
	nWorkers := ex.Min(nJobs, workers)

	// jobs store the index a batch starts and ends at, truncating the last
	// batch to the iteration count if needed
	jobs := make([]job, nJobs)
	for i := range nJobs {
		jobs[i] = job{
			id:    i,
			start: i * batchSize,
			end:   ex.Min((i+1)*batchSize, iterations),
		}
	}

	return jobs, nWorkers
}

// RunMonteCarloSimulation produces one terminal value per trial: each trial
// draws Horizon log returns from N(mean, stddev), sums them, and compounds the
// principal by exp of the sum. Trials are independent; every batch owns a
// distinct random stream keyed by batch id, so a fixed seed reproduces the
// exact output regardless of which worker picks up which batch.
func (sc *ServiceContext) RunMonteCarloSimulation(params ReturnParameters, settings SimulationSettings) ([]float64, error) {
	if settings.Iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidInput, settings.Iterations)
	}
	if settings.Horizon <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidInput, settings.Horizon)
	}
	if settings.Principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, settings.Principal)
	}
	if params.StdDev < 0 {
		return nil, fmt.Errorf("%w: standard deviation cannot be negative, got %v", ErrInvalidInput, params.StdDev)
	}

	newSource := settings.SourceFactory
	if newSource == nil {
		seed := uint64(settings.Seed)
		if settings.Seed == 0 {
			seed = rand.Uint64()
		}
		newSource = func(stream uint64) rand.Source {
			return rand.NewPCG(seed, stream)
		}
	}

	res := make([]float64, settings.Iterations)
	jobs, nWorkers := GetNumberOfJobsAndWorkers(settings.Iterations, BatchSize, Workers)

	log.Infof("Starting monte carlo simulation: %v trials, %v day horizon, %v batches, %v workers",
		settings.Iterations, settings.Horizon, len(jobs), nWorkers)

	// workers steal batches from this channel as they finish their own
	jobsChannel := make(chan job, len(jobs))
	for _, v := range jobs {
		jobsChannel <- v
	}
	close(jobsChannel)

	// deriving the group context from the service context means a cancelled
	// request stops the trial loop between batches
	g, ctx := errgroup.WithContext(sc.Context)

	for range nWorkers {
		g.Go(func() error {
			for j := range jobsChannel {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				// stream 0 of a PCG pair degrades, offset by one
				sampler := distuv.Normal{
					Mu:    params.Mean,
					Sigma: params.StdDev,
					Src:   newSource(uint64(j.id) + 1),
				}

				for trial := j.start; trial < j.end; trial++ {
					cumulative := 0.0
					for range settings.Horizon {
						cumulative += sampler.Rand()
					}
					res[trial] = settings.Principal * math.Exp(cumulative)
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}
