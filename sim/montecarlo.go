// Implements the Monte Carlo run driver: J parallel workers
// pulling run indices from a shared atomic counter, each running an
// independent simulation over its own Environment copy, with results
// joined under a single mutex and then Kahan-aggregated.

package sim

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// RunMonteCarlo executes OutputSettings.NumberOfRunsToAggregate independent
// simulations across GeneralSettings.NumberOfThreads workers and returns
// the aggregated result. A solver failure in any worker is fatal to the
// whole driver: the formulation is always feasible, so a solver failure
// indicates a bug, and there is no partial result worth salvaging.
func RunMonteCarlo(env *Environment, sim *SimulatorSettings, out *OutputSettings, gen *GeneralSettings, newSource RequestSourceFactory) (result *AggregatedResult, err error) {
	start := time.Now()

	runs := out.NumberOfRunsToAggregate
	workers := gen.NumberOfThreads
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > runs {
		workers = runs
	}

	results := make([]*Result, 0, runs)
	var mu sync.Mutex
	var firstErr error
	var nextRun int64
	var wg sync.WaitGroup

	fail := func(failure error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = failure
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("simulation run panicked: %v", r))
				}
			}()

			for {
				r := atomic.AddInt64(&nextRun, 1) - 1
				if r >= int64(runs) {
					return
				}
				runEnv := env.Clone()
				runResult, simErr := simulateRun(runEnv, sim, sim.Seed+uint64(r), newSource)
				if simErr != nil {
					fail(simErr)
					return
				}

				mu.Lock()
				results = append(results, runResult)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	elapsed := time.Since(start).Milliseconds()
	return Aggregate(results, *sim, out.OutputTrace, elapsed), nil
}
