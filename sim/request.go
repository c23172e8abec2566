// Defines the Request struct that models a desired dropoff -> parking -> dropoff
// round trip before it has been bound to a parking spot.

package sim

// Request models a single parking request's lifecycle before it is
// scheduled. A request is mutated in place by the simulator and the
// scheduler: Duration counts down every timestep it sits unassigned,
// TillArrival counts down every timestep it sits in the early queue, and
// TimesDropped is incremented each time the scheduler returns it
// unassigned.
type Request struct {
	DropoffNode  int // index into the environment's dropoff nodes
	Duration     int // minutes remaining in this request's total budget
	TillArrival  int // minutes until the request is early no longer
	TimesDropped int // number of times the scheduler has left this unassigned
}

// IsEarly reports whether the request still has lead time before it is
// committable.
func (r *Request) IsEarly() bool {
	return r.TillArrival > 0
}

// IsDead reports whether the request's duration budget has been exhausted.
func (r *Request) IsDead() bool {
	return r.Duration == 0
}

// DecrementDuration ages the request by one timestep while it sits
// unassigned. Never decrements below zero.
func (r *Request) DecrementDuration() {
	if r.Duration > 0 {
		r.Duration--
	}
}

// DecrementTillArrival ages the request by one timestep while it sits in
// the early-requests buffer. No-op once TillArrival reaches zero.
func (r *Request) DecrementTillArrival() {
	if r.TillArrival > 0 {
		r.TillArrival--
	}
}

// IncrementTimesDropped records that the scheduler left this request
// unassigned in the current batch.
func (r *Request) IncrementTimesDropped() {
	r.TimesDropped++
}
