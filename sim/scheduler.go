// Implements the batch scheduler: the capacitated integer
// program that jointly assigns a batch of live requests to parking spots.

package sim

import (
	"math"
	"time"

	"github.com/aalborg-palloc/palloc/sim/solver"
)

// BatchResult is the scheduler's return value: the Simulations it
// committed, the requests it left for retry, the requests it deferred for
// still being early, and batch-level totals for aggregation.
type BatchResult struct {
	Simulations        []*Simulation
	UnassignedRequests []*Request
	EarlyRequests      []*Request
	TotalDuration      int
	TotalCost          float64
	ProcessedRequests  int
	VariableCount      int
}

// ScheduleBatch builds and solves the ILP for one batch boundary. env's
// AvailableParkingSpots is mutated in place for every request this batch
// commits to a Simulation.
func ScheduleBatch(env *Environment, requests []*Request, settings *SimulatorSettings) *BatchResult {
	n := len(requests)
	p := env.NumParkings()

	model := solver.NewModel()
	x := make([][]solver.VarID, n)
	for i := range requests {
		x[i] = make([]solver.VarID, p)
		for j := 0; j < p; j++ {
			x[i][j] = model.AddBoolVar()
		}
	}
	u := make([]solver.VarID, n)
	for i := range requests {
		u[i] = model.AddBoolVar()
	}

	routeDuration := make([][]int, n)
	for i, r := range requests {
		routeDuration[i] = make([]int, p)
		vars := make([]solver.VarID, 0, p+1)
		coeffs := make([]float64, 0, p+1)
		for j := 0; j < p; j++ {
			rho := env.DropoffToParking[r.DropoffNode][j] + env.ParkingToDropoff[j][r.DropoffNode]
			routeDuration[i][j] = rho

			vars = append(vars, x[i][j])
			coeffs = append(coeffs, 1)

			if env.ParkingToDropoff[j][r.DropoffNode]+env.DropoffToParking[r.DropoffNode][j]+settings.MinParkingTime > r.Duration {
				model.FixVar(x[i][j], 0)
			}

			weight := 1.0
			if settings.WeightedParking && env.ParkingWeights != nil {
				weight = env.ParkingWeights[j]
			}
			model.SetObjectiveCoeff(x[i][j], math.Round(float64(rho)*weight))
		}
		vars = append(vars, u[i])
		coeffs = append(coeffs, 1)
		model.AddLinearEq(vars, coeffs, 1)

		model.SetObjectiveCoeff(u[i], float64(UnassignedPenalty*(1+r.TimesDropped)))
	}

	for j := 0; j < p; j++ {
		vars := make([]solver.VarID, n)
		coeffs := make([]float64, n)
		for i := range requests {
			vars[i] = x[i][j]
			coeffs[i] = 1
		}
		model.AddLinearLe(vars, coeffs, float64(env.AvailableParkingSpots[j]))
	}

	status, objective, assignment := solver.Solve(model, time.Duration(MaxSearchTimeMillis)*time.Millisecond)
	if status != solver.StatusOptimal && status != solver.StatusFeasible {
		panic("sim: scheduler solver returned " + status.String() + ", formulation should always be feasible")
	}

	result := &BatchResult{
		ProcessedRequests: n,
		VariableCount:     n * (p + 1),
		TotalCost:         objective,
	}

	for i, r := range requests {
		assignedParking := -1
		for j := 0; j < p; j++ {
			if assignment[int(x[i][j])] {
				assignedParking = j
				break
			}
		}

		switch {
		case r.TillArrival > settings.CommitInterval:
			result.EarlyRequests = append(result.EarlyRequests, r)
		case assignedParking >= 0:
			rho := routeDuration[i][assignedParking]
			sim := NewSimulation(r.DropoffNode, assignedParking, r.Duration, r.TillArrival, rho)
			result.Simulations = append(result.Simulations, sim)
			env.AvailableParkingSpots[assignedParking]--
			result.TotalDuration += rho
		case r.TillArrival > 0:
			result.EarlyRequests = append(result.EarlyRequests, r)
		default:
			r.IncrementTimesDropped()
			result.UnassignedRequests = append(result.UnassignedRequests, r)
		}
	}

	return result
}
