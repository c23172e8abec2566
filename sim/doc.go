// Package sim provides the core simulation engine for palloc.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go: Request lifecycle (unassigned → early/dropped → scheduled)
//   - simulation.go: Simulation (an in-progress round trip) and its per-tick state machine
//   - environment.go: the static road-network data a run operates over
//   - scheduler.go: the batch ILP that turns live requests into Simulations
//   - simulator.go: the per-timestep driver that ages state and invokes the scheduler
//   - montecarlo.go: the parallel run driver and result aggregation
//
// # Architecture
//
// Request generation lives in sim/workload, the ILP solver lives in
// sim/solver, and per-timestep trace records live in sim/trace. The sim
// package wires all three together into a single run.
package sim
