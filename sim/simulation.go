package sim

// Simulation is an in-progress scheduled round trip: dropoff -> parking ->
// dropoff. It is created by the scheduler when a request is assigned a
// parking spot, and ages one tick per timestep until it completes.
type Simulation struct {
	DropoffNode    int
	ParkingNode    int
	InitialDur     int // r0: the request's original duration budget
	DurationLeft   int // r_l: ticks remaining, counts down to 0
	EarlyTimeLeft  int // e: ticks to hold before the trip starts moving
	RouteDuration  int // rho: dropoffToParking + parkingToDropoff for this pair
	InDropoff      bool
	VisitedParking bool
}

// NewSimulation constructs a Simulation at the moment the scheduler commits
// a request to a parking spot. earlyTimeLeft is the request's TillArrival
// at scheduling time.
func NewSimulation(dropoff, parking, requestDuration, earlyTimeLeft, routeDuration int) *Simulation {
	return &Simulation{
		DropoffNode:    dropoff,
		ParkingNode:    parking,
		InitialDur:     requestDuration,
		DurationLeft:   requestDuration,
		EarlyTimeLeft:  earlyTimeLeft,
		RouteDuration:  routeDuration,
		InDropoff:      true,
		VisitedParking: false,
	}
}

// Age advances the simulation by one timestep against the given
// environment, implementing the per-trip state machine:
//
//  1. while early, tick down EarlyTimeLeft and do nothing else;
//  2. outbound: once the dropoff->parking travel time has elapsed, mark
//     arrival at parking;
//  3. parked: once only the parking->dropoff travel time remains, release
//     capacity and start the return leg;
//  4. degenerate zero-travel return: if the trip dies exactly as it
//     would have started its return leg with zero travel time, release
//     capacity on the same tick.
//
// Returns true if the simulation has completed (DurationLeft reached zero
// while InDropoff) and should be removed from the live list.
func (s *Simulation) Age(env *Environment) bool {
	if s.EarlyTimeLeft > 0 {
		s.EarlyTimeLeft--
		return false
	}

	if s.InDropoff && !s.VisitedParking {
		durationPassed := s.InitialDur - s.DurationLeft
		if durationPassed == env.DropoffToParking[s.DropoffNode][s.ParkingNode] {
			s.InDropoff = false
			s.VisitedParking = true
		}
	}

	if !s.InDropoff && s.DurationLeft == env.ParkingToDropoff[s.ParkingNode][s.DropoffNode] {
		s.InDropoff = true
		env.AvailableParkingSpots[s.ParkingNode]++
	}

	s.DurationLeft--

	if s.DurationLeft == 0 && !s.InDropoff && env.ParkingToDropoff[s.ParkingNode][s.DropoffNode] == 0 {
		s.InDropoff = true
		env.AvailableParkingSpots[s.ParkingNode]++
	}

	if !(s.DurationLeft > 0 || (s.DurationLeft == 0 && s.InDropoff)) {
		panic("sim: simulation invariant violated — duration exhausted while not in dropoff")
	}

	return s.DurationLeft == 0
}
