// Package trace holds the per-timestep trace records a simulation run can
// optionally emit, and the per-run lists the Monte Carlo driver collects
// them into for output.
package trace

// Coordinate is an opaque lat/lon pair, carried from the environment into
// assignment records and never interpreted by the core.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Assignment records one scheduler decision binding a request to a parking
// spot within a batch, located by the coordinates of both ends.
type Assignment struct {
	DropoffCoordinate Coordinate `json:"dropoff_coordinate"`
	ParkingCoordinate Coordinate `json:"parking_coordinate"`
	RequestDuration   int        `json:"request_duration"`
	RouteDuration     int        `json:"route_duration"`
}

// Trace is an immutable per-timestep snapshot of counters plus the
// assignments made if this timestep was a batch boundary.
type Trace struct {
	Timestep                   int          `json:"timestep"`
	CurrentTimeOfDay           int          `json:"current_time_of_day"`
	NumberOfRequests           int          `json:"number_of_requests"`
	NumberOfOngoingSimulations int          `json:"number_of_ongoing_simulations"`
	AvailableParkingSpots      int          `json:"available_parking_spots"`
	AverageCost                float64      `json:"average_cost"`
	AverageDuration            float64      `json:"average_duration"`
	DroppedRequests            int          `json:"dropped_requests"`
	EarlyRequests              int          `json:"early_requests"`
	Assignments                []Assignment `json:"assignments"`
}

// List is the ordered sequence of Trace entries for a single run.
type List []Trace

// Lists is one List per Monte Carlo run when trace output is requested;
// empty otherwise. Run completion order is scheduler-dependent, so the
// lists are not sorted by run index.
type Lists []List

// NewList preallocates a trace list for a known timestep horizon.
func NewList(timesteps int) List {
	return make(List, 0, timesteps)
}

// Append records one timestep's trace entry.
func (l *List) Append(t Trace) {
	*l = append(*l, t)
}
