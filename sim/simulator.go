// sim/simulator.go
//
// Implements the discrete-timestep simulation stepper: the per-minute
// driver that ages in-progress trips and buffered requests,
// admits newly generated requests, and invokes the batch scheduler at
// batch boundaries. This is not an event-heap simulator — the per-trip
// state machine lives in Simulation.Age, and there is nothing left for an
// event queue to order.

package sim

import (
	"github.com/aalborg-palloc/palloc/sim/trace"
)

// Simulator runs a single simulation from t=1 to t=Timesteps against its
// own Environment copy.
type Simulator struct {
	env       *Environment
	settings  *SimulatorSettings
	generator RequestSource

	requests           *RequestBuffer
	unassignedRequests []*Request
	earlyRequests      []*Request
	simulations        []*Simulation

	droppedRequests        int
	expiredUnassigned      int // unassigned requests whose duration ran out
	requestsScheduled      int
	totalDuration          int
	totalCost              float64
	totalVariableCount     int
	totalProcessedRequests int

	traces trace.List
}

// NewSimulator constructs a simulator for one run. env is this run's own
// copy (the caller is responsible for cloning); generator is
// this run's own request source, bound to its own seeded PRNG.
func NewSimulator(env *Environment, settings *SimulatorSettings, generator RequestSource) *Simulator {
	s := &Simulator{
		env:       env,
		settings:  settings,
		generator: generator,
		requests:  NewRequestBuffer(settings.Timesteps, settings.RequestRate),
	}
	if settings.Timesteps > 0 {
		s.traces = trace.NewList(settings.Timesteps)
	}
	return s
}

// Run executes every timestep from 1 to Timesteps and returns the run's
// Result.
func (s *Simulator) Run() *Result {
	for t := 1; t <= s.settings.Timesteps; t++ {
		s.step(t)
	}

	return &Result{
		TotalDroppedRequests:   s.droppedRequests,
		TotalDuration:          s.totalDuration,
		TotalCost:              s.totalCost,
		TotalVariableCount:     s.totalVariableCount,
		TotalProcessedRequests: s.totalProcessedRequests,
		RequestsGenerated:      s.generator.RequestsGenerated(),
		RequestsScheduled:      s.requestsScheduled,
		RequestsUnassigned:     s.expiredUnassigned + len(s.unassignedRequests),
		Trace:                  s.traces,
	}
}

func (s *Simulator) step(t int) {
	timeOfDay := (s.settings.StartTimeOfDay + t - 1) % 1440

	s.ageSimulations()
	s.ageUnassignedRequests()
	s.ageEarlyRequests()

	for _, r := range s.generator.Generate(timeOfDay) {
		s.requests.Append(r)
	}

	s.pruneImpossibleRequests()

	var batch *BatchResult
	if t%s.settings.BatchInterval == 0 || t == s.settings.Timesteps {
		batch = s.batchBoundary()
	}

	s.appendTrace(t, timeOfDay, batch)
}

func (s *Simulator) appendTrace(t, timeOfDay int, batch *BatchResult) {
	available := 0
	for _, v := range s.env.AvailableParkingSpots {
		available += v
	}
	tr := trace.Trace{
		Timestep:                   t,
		CurrentTimeOfDay:           timeOfDay,
		NumberOfRequests:           s.requests.Len(),
		NumberOfOngoingSimulations: len(s.simulations),
		AvailableParkingSpots:      available,
		DroppedRequests:            s.droppedRequests,
		EarlyRequests:              len(s.earlyRequests),
	}
	if batch != nil {
		tr.AverageCost = batch.TotalCost / float64(batch.ProcessedRequests)
		if len(batch.Simulations) > 0 {
			tr.AverageDuration = float64(batch.TotalDuration) / float64(len(batch.Simulations))
		}
		assignments := make([]trace.Assignment, len(batch.Simulations))
		for i, sim := range batch.Simulations {
			assignments[i] = trace.Assignment{
				DropoffCoordinate: s.env.DropoffCoordinate(sim.DropoffNode),
				ParkingCoordinate: s.env.ParkingCoordinate(sim.ParkingNode),
				RequestDuration:   sim.InitialDur,
				RouteDuration:     sim.RouteDuration,
			}
		}
		tr.Assignments = assignments
	}
	s.traces.Append(tr)
}

func (s *Simulator) ageSimulations() {
	live := s.simulations[:0]
	for _, sim := range s.simulations {
		if !sim.Age(s.env) {
			live = append(live, sim)
		}
	}
	s.simulations = live
}

func (s *Simulator) ageUnassignedRequests() {
	for _, r := range s.unassignedRequests {
		r.DecrementDuration()
		if r.IsDead() {
			s.expiredUnassigned++
		}
	}
	s.unassignedRequests = FilterInPlace(s.unassignedRequests, func(r *Request) bool { return !r.IsDead() })
}

func (s *Simulator) ageEarlyRequests() {
	for _, r := range s.earlyRequests {
		r.DecrementTillArrival()
	}
}

func (s *Simulator) pruneImpossibleRequests() {
	s.requests.Filter(func(r *Request) bool {
		return r.Duration >= s.env.SmallestRoundTrips[r.DropoffNode]
	})
}

func (s *Simulator) batchBoundary() *BatchResult {
	s.requests.Splice(s.unassignedRequests)
	s.requests.Splice(s.earlyRequests)
	s.unassignedRequests = nil
	s.earlyRequests = nil

	if s.requests.Len() == 0 {
		return nil
	}

	batch := ScheduleBatch(s.env, s.requests.Items(), s.settings)
	s.requests.Clear()

	s.unassignedRequests = batch.UnassignedRequests
	s.earlyRequests = batch.EarlyRequests
	s.simulations = append(s.simulations, batch.Simulations...)
	s.requestsScheduled += len(batch.Simulations)
	s.droppedRequests += len(batch.UnassignedRequests)
	s.totalDuration += batch.TotalDuration
	s.totalCost += batch.TotalCost
	s.totalVariableCount += batch.VariableCount
	s.totalProcessedRequests += batch.ProcessedRequests
	return batch
}

// simulateRun is a package-level convenience used by the Monte Carlo
// driver: build a generator-backed simulator from scratch and run it to
// completion.
func simulateRun(env *Environment, settings *SimulatorSettings, seed uint64, newSource RequestSourceFactory) (*Result, error) {
	engine, err := NewEngine(settings.RandomGenerator, seed)
	if err != nil {
		return nil, err
	}
	sim := NewSimulator(env, settings, newSource(engine))
	return sim.Run(), nil
}
