// Implements the per-timestep request generator: time-of-day
// traffic-weighted Poisson counts, uniform dropoff sampling, duration
// bucket sampling, and uniform arrival-lead-time sampling.

package workload

import "github.com/aalborg-palloc/palloc/sim"

// Generator produces the requests a single timestep admits into a
// simulation's request buffer. It is single-threaded and stateful only in
// its PRNG and its running request count; each simulation run owns one
// Generator.
type Generator struct {
	numDropoffs        int
	requestRate        float64
	maxTimeTillArrival int
	engine             sim.Engine
	durations          *DurationSampler

	requestsGenerated int
}

// NewGenerator builds a generator for one run. requestRate is the base
// Poisson lambda before time-of-day weighting; maxRequestDuration and
// maxTimeTillArrival bound the generated request's Duration and
// TillArrival fields respectively.
func NewGenerator(numDropoffs int, requestRate float64, maxRequestDuration, maxTimeTillArrival int, engine sim.Engine) *Generator {
	return &Generator{
		numDropoffs:        numDropoffs,
		requestRate:        requestRate,
		maxTimeTillArrival: maxTimeTillArrival,
		engine:             engine,
		durations:          NewDurationSampler(maxRequestDuration),
	}
}

// Generate produces the requests arriving at the given time of day
// (minutes since midnight, in [0, 1439]).
func (g *Generator) Generate(timeOfDay int) []*sim.Request {
	hour := (timeOfDay / 60) % 24
	mean := g.requestRate * TrafficWeights[hour]
	count := sim.Poisson(g.engine, mean)

	requests := make([]*sim.Request, 0, count)
	for i := 0; i < count; i++ {
		dropoff := sim.UniformInt(g.engine, 0, g.numDropoffs-1)
		duration := g.durations.Sample(g.engine)
		arrival := sim.UniformInt(g.engine, 0, g.maxTimeTillArrival)
		requests = append(requests, &sim.Request{
			DropoffNode: dropoff,
			Duration:    duration,
			TillArrival: arrival,
		})
	}
	g.requestsGenerated += count
	return requests
}

// RequestsGenerated returns the cumulative count of requests this
// generator has produced across all calls to Generate.
func (g *Generator) RequestsGenerated() int {
	return g.requestsGenerated
}
