package sim

// UnassignedPenalty is the per-unit penalty the scheduler's objective pays
// for leaving a request unassigned, scaled by (1 + timesDropped) so a
// request's scheduling pressure escalates every time it is dropped.
const UnassignedPenalty = 1000

// MaxSearchTimeMillis bounds a single scheduler invocation's solver wall
// time. The formulation always admits the trivial all-unassigned solution,
// so a solver hitting this limit without OPTIMAL or FEASIBLE indicates a
// bug, not genuine infeasibility.
const MaxSearchTimeMillis = 60000
