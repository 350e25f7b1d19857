// Package montecarlo repeats independent simulation runs and reduces their
// result records to per-field statistics.
package montecarlo

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/lawnchairsociety/huntersim/internal/combat"
	"github.com/lawnchairsociety/huntersim/internal/config"
	"github.com/lawnchairsociety/huntersim/internal/sim"
)

// Config controls a batch of runs.
type Config struct {
	// Iterations is the number of independent runs.
	Iterations int

	// Workers sizes the worker pool. Non-positive means pure sequential
	// execution, useful for deterministic test reproduction.
	Workers int

	// Seed is the base seed; run i uses Seed+i so a batch is reproducible
	// while every run still draws an independent stream.
	Seed int64

	// Options are the per-run engine ceilings.
	Options sim.Options
}

// RunError wraps a failed run with its index so a bad run cannot silently
// drop out of the statistics.
type RunError struct {
	Run int
	Err error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("simulation run %d failed: %v", e.Run, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// RunOne executes a single run to termination.
func RunOne(build *config.BuildConfig, seed int64, log *slog.Logger, opts sim.Options) (combat.Result, error) {
	s, err := sim.New(build, seed, log, opts)
	if err != nil {
		return combat.Result{}, err
	}
	return s.Run()
}

// RunMany executes cfg.Iterations independent runs, sequentially or fanned
// out across a fixed-size worker pool. Each run owns its state exclusively;
// the only shared structure is the result slice, written at distinct
// indices.
func RunMany(build *config.BuildConfig, cfg Config, log *slog.Logger) ([]combat.Result, error) {
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("montecarlo: iterations must be positive, got %d", cfg.Iterations)
	}

	results := make([]combat.Result, cfg.Iterations)

	if cfg.Workers <= 0 {
		for i := 0; i < cfg.Iterations; i++ {
			res, err := runGuarded(build, i, cfg.Seed+int64(i), log, cfg.Options)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return results, nil
	}

	workers := cfg.Workers
	if workers > cfg.Iterations {
		workers = cfg.Iterations
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := runGuarded(build, i, cfg.Seed+int64(i), log, cfg.Options)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				results[i] = res
			}
		}()
	}

	for i := 0; i < cfg.Iterations; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// runGuarded executes one run and converts engine panics (programmer
// errors in the entity layer) into a RunError naming the run index.
func runGuarded(build *config.BuildConfig, run int, seed int64, log *slog.Logger, opts sim.Options) (res combat.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RunError{Run: run, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	res, err = RunOne(build, seed, log, opts)
	if err != nil {
		err = &RunError{Run: run, Err: err}
	}
	return res, err
}
