package sim

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aalborg-palloc/palloc/sim/trace"
)

// Coordinate is an opaque lat/lon pair, passed through to trace output and
// never interpreted by the core.
type Coordinate = trace.Coordinate

// environmentFile is the on-disk JSON shape of an environment. Unknown
// keys are tolerated by a plain json.Unmarshal.
type environmentFile struct {
	DropoffToParking   [][]uint32   `json:"dropoff_to_parking"`
	ParkingToDropoff   [][]uint32   `json:"parking_to_dropoff"`
	ParkingCapacities  []uint32     `json:"parking_capacities"`
	DropoffCoords      []Coordinate `json:"dropoff_coords"`
	ParkingCoords      []Coordinate `json:"parking_coords"`
	SmallestRoundTrips []uint32     `json:"smallest_round_trips"`
	ParkingWeights     []float64    `json:"parking_weights"`
}

// Environment is the static road-network data a run operates over: travel
// time matrices between dropoffs and parkings, per-parking capacity
// (mutable), and the coordinates/weights carried through to traces and the
// scheduler's cost model.
type Environment struct {
	DropoffToParking      [][]int
	ParkingToDropoff      [][]int
	AvailableParkingSpots []int
	InitialCapacity       []int
	SmallestRoundTrips    []int
	ParkingWeights        []float64
	DropoffCoords         []Coordinate
	ParkingCoords         []Coordinate
}

// LoadEnvironment reads and parses an environment file from disk.
func LoadEnvironment(path string) (*Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading environment file: %w", err)
	}
	var ef environmentFile
	if err := json.Unmarshal(data, &ef); err != nil {
		return nil, fmt.Errorf("parsing environment file: %w", err)
	}
	return newEnvironmentFromFile(&ef)
}

func newEnvironmentFromFile(ef *environmentFile) (*Environment, error) {
	if len(ef.DropoffToParking) == 0 {
		return nil, fmt.Errorf("environment: dropoff_to_parking must be non-empty")
	}
	if len(ef.ParkingCapacities) == 0 {
		return nil, fmt.Errorf("environment: parking_capacities must be non-empty")
	}
	numDropoffs := len(ef.DropoffToParking)
	numParkings := len(ef.ParkingCapacities)
	for d, row := range ef.DropoffToParking {
		if len(row) != numParkings {
			return nil, fmt.Errorf("environment: dropoff_to_parking row %d has %d entries for %d parkings", d, len(row), numParkings)
		}
	}
	if len(ef.ParkingToDropoff) != numParkings {
		return nil, fmt.Errorf("environment: parking_to_dropoff has %d rows for %d parkings", len(ef.ParkingToDropoff), numParkings)
	}
	for p, row := range ef.ParkingToDropoff {
		if len(row) != numDropoffs {
			return nil, fmt.Errorf("environment: parking_to_dropoff row %d has %d entries for %d dropoffs", p, len(row), numDropoffs)
		}
	}

	env := &Environment{
		DropoffToParking:      toIntMatrix(ef.DropoffToParking),
		ParkingToDropoff:      toIntMatrix(ef.ParkingToDropoff),
		AvailableParkingSpots: toIntSlice(ef.ParkingCapacities),
		InitialCapacity:       toIntSlice(ef.ParkingCapacities),
		SmallestRoundTrips:    toIntSlice(ef.SmallestRoundTrips),
		ParkingWeights:        ef.ParkingWeights,
		DropoffCoords:         ef.DropoffCoords,
		ParkingCoords:         ef.ParkingCoords,
	}

	if len(env.SmallestRoundTrips) == 0 {
		env.SmallestRoundTrips = computeSmallestRoundTrips(env.DropoffToParking, env.ParkingToDropoff, numDropoffs, numParkings)
	}
	if len(env.SmallestRoundTrips) != numDropoffs {
		return nil, fmt.Errorf("environment: smallest_round_trips length %d does not match %d dropoffs", len(env.SmallestRoundTrips), numDropoffs)
	}
	return env, nil
}

// computeSmallestRoundTrips fills in the per-dropoff minimum round trip
// when the environment file omits it: min over p of d2p[d][p] + p2d[p][d].
func computeSmallestRoundTrips(d2p, p2d [][]int, numDropoffs, numParkings int) []int {
	out := make([]int, numDropoffs)
	for d := 0; d < numDropoffs; d++ {
		best := -1
		for p := 0; p < numParkings; p++ {
			trip := d2p[d][p] + p2d[p][d]
			if best == -1 || trip < best {
				best = trip
			}
		}
		out[d] = best
	}
	return out
}

// NumDropoffs returns the number of dropoff nodes.
func (e *Environment) NumDropoffs() int { return len(e.DropoffToParking) }

// NumParkings returns the number of parking nodes.
func (e *Environment) NumParkings() int { return len(e.AvailableParkingSpots) }

// Clone returns a deep copy of the environment, used to give each Monte
// Carlo worker its own mutable capacity state without sharing memory
// across runs.
func (e *Environment) Clone() *Environment {
	clone := &Environment{
		DropoffToParking:      cloneIntMatrix(e.DropoffToParking),
		ParkingToDropoff:      cloneIntMatrix(e.ParkingToDropoff),
		AvailableParkingSpots: append([]int(nil), e.AvailableParkingSpots...),
		InitialCapacity:       append([]int(nil), e.InitialCapacity...),
		SmallestRoundTrips:    append([]int(nil), e.SmallestRoundTrips...),
		DropoffCoords:         append([]Coordinate(nil), e.DropoffCoords...),
		ParkingCoords:         append([]Coordinate(nil), e.ParkingCoords...),
	}
	if e.ParkingWeights != nil {
		clone.ParkingWeights = append([]float64(nil), e.ParkingWeights...)
	}
	return clone
}

// DropoffCoordinate returns the coordinate of a dropoff node, or the zero
// coordinate when the environment file carried none.
func (e *Environment) DropoffCoordinate(d int) Coordinate {
	if d < len(e.DropoffCoords) {
		return e.DropoffCoords[d]
	}
	return Coordinate{}
}

// ParkingCoordinate returns the coordinate of a parking node, or the zero
// coordinate when the environment file carried none.
func (e *Environment) ParkingCoordinate(p int) Coordinate {
	if p < len(e.ParkingCoords) {
		return e.ParkingCoords[p]
	}
	return Coordinate{}
}

// ValidateParkingWeights checks that per-parking weights exist, cover every
// parking, and lie in [0, 1]. Weighted parking costs cannot be enabled
// without them.
func (e *Environment) ValidateParkingWeights() error {
	if len(e.ParkingWeights) != e.NumParkings() {
		return fmt.Errorf("environment: %d parking weights for %d parkings", len(e.ParkingWeights), e.NumParkings())
	}
	for i, w := range e.ParkingWeights {
		if w < 0 || w > 1 {
			return fmt.Errorf("environment: parking weight %d is %f, want in [0, 1]", i, w)
		}
	}
	return nil
}

// TotalCapacity sums initial per-parking capacity, used by capacity
// conservation checks.
func (e *Environment) TotalCapacity() int {
	total := 0
	for _, c := range e.InitialCapacity {
		total += c
	}
	return total
}

func toIntMatrix(m [][]uint32) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = toIntSlice(row)
	}
	return out
}

func toIntSlice(s []uint32) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}

func cloneIntMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}
