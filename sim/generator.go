package sim

// RequestSource is the capability the simulator needs from a request
// generator: produce this timestep's new requests, and report the
// running total produced so far. The concrete generator lives in
// sim/workload so that package can depend on sim's Request and Engine
// types without sim depending back on it.
type RequestSource interface {
	Generate(timeOfDay int) []*Request
	RequestsGenerated() int
}

// RequestSourceFactory builds a fresh RequestSource bound to a specific
// run's PRNG. The Monte Carlo driver calls this once per run so that every
// run gets its own generator and PRNG state, keeping runs independent.
type RequestSourceFactory func(engine Engine) RequestSource
