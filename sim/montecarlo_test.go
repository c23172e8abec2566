package sim

import "testing"

// countingSourceFactory builds a RequestSource that generates a single
// request at t=1 of every run and nothing else, so each run's outcome is
// small and predictable regardless of which worker or seed picks it up.
func countingSourceFactory() RequestSourceFactory {
	return func(engine Engine) RequestSource {
		return &scriptedSource{byTimestep: map[int][]*Request{
			1: {{DropoffNode: 0, Duration: 10, TillArrival: 0}},
		}}
	}
}

func baseMonteCarloSettings(runs, threads int) (*SimulatorSettings, *OutputSettings, *GeneralSettings) {
	sim := &SimulatorSettings{
		Timesteps:       5,
		BatchInterval:   1,
		CommitInterval:  0,
		RequestRate:     1,
		RandomGenerator: "pcg",
		Seed:            1,
	}
	out := &OutputSettings{NumberOfRunsToAggregate: runs}
	gen := &GeneralSettings{NumberOfThreads: threads}
	return sim, out, gen
}

func TestRunMonteCarlo_AggregatesAcrossRuns(t *testing.T) {
	env := testEnvironment()
	sim, out, gen := baseMonteCarloSettings(4, 2)

	agg, err := RunMonteCarlo(env, sim, out, gen, countingSourceFactory())
	if err != nil {
		t.Fatalf("RunMonteCarlo returned error: %v", err)
	}
	if agg.RequestsGenerated != 4 {
		t.Fatalf("RequestsGenerated = %d, want 4 (one per run)", agg.RequestsGenerated)
	}
	if agg.RequestsScheduled != 4 {
		t.Fatalf("RequestsScheduled = %d, want 4", agg.RequestsScheduled)
	}
	if agg.AvgCost != 2 {
		t.Fatalf("AvgCost = %f, want 2", agg.AvgCost)
	}
}

func TestRunMonteCarlo_DoesNotMutateBaseEnvironment(t *testing.T) {
	env := testEnvironment()
	before := append([]int(nil), env.AvailableParkingSpots...)
	sim, out, gen := baseMonteCarloSettings(3, 1)

	if _, err := RunMonteCarlo(env, sim, out, gen, countingSourceFactory()); err != nil {
		t.Fatalf("RunMonteCarlo returned error: %v", err)
	}
	for i, v := range env.AvailableParkingSpots {
		if v != before[i] {
			t.Fatalf("base environment capacity[%d] mutated: %d != %d", i, v, before[i])
		}
	}
}

func TestRunMonteCarlo_DefaultsThreadsToRunCount(t *testing.T) {
	env := testEnvironment()
	sim, out, gen := baseMonteCarloSettings(2, 0)

	agg, err := RunMonteCarlo(env, sim, out, gen, countingSourceFactory())
	if err != nil {
		t.Fatalf("RunMonteCarlo returned error: %v", err)
	}
	if agg.RequestsGenerated != 2 {
		t.Fatalf("RequestsGenerated = %d, want 2", agg.RequestsGenerated)
	}
}

func TestRunMonteCarlo_PropagatesWorkerPanic(t *testing.T) {
	env := testEnvironment()
	sim, out, gen := baseMonteCarloSettings(2, 2)

	panicking := func(engine Engine) RequestSource {
		return &scriptedSource{byTimestep: map[int][]*Request{
			1: {{DropoffNode: 99, Duration: 10, TillArrival: 0}}, // out of range dropoff
		}}
	}

	_, err := RunMonteCarlo(env, sim, out, gen, panicking)
	if err == nil {
		t.Fatal("expected an error surfaced from a worker panic on an out-of-range dropoff")
	}
}
