package solver

import (
	"container/heap"
	"time"
)

// unassigned marks a variable that branching has not yet fixed.
const unassigned = -1

// node is one partial assignment in the branch-and-bound search tree. The
// frontier orders nodes by lower bound, so the search explores the most
// promising partial assignment first (best-first by priority, kept in a
// container/heap).
type node struct {
	assign []int8 // unassigned, 0, or 1 per variable
	bound  float64
	index  int // heap bookkeeping
}

type frontier []*node

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].bound < f[j].bound }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i]; f[i].index = i; f[j].index = j }
func (f *frontier) Push(x any) {
	n := x.(*node)
	n.index = len(*f)
	*f = append(*f, n)
}
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

// Solve runs branch-and-bound over m's variables until an optimal solution
// is proven, the time limit elapses, or infeasibility is proven. All
// objective coefficients in this codebase's scheduler formulation are
// non-negative, which Solve relies on for its bounding function.
func Solve(m *Model, timeLimit time.Duration) (Status, float64, []bool) {
	deadline := time.Now().Add(timeLimit)

	root := &node{assign: make([]int8, m.numVars)}
	for i := range root.assign {
		root.assign[i] = unassigned
	}
	for v, val := range m.fixed {
		root.assign[v] = int8(val)
	}
	if !feasiblePartial(m, root.assign) {
		return StatusInfeasible, 0, nil
	}
	root.bound = lowerBound(m, root.assign)

	fr := &frontier{root}
	heap.Init(fr)

	var best []int8
	bestValue := 0.0
	haveIncumbent := false
	checked := 0

	for fr.Len() > 0 {
		checked++
		if checked%256 == 0 && time.Now().After(deadline) {
			if haveIncumbent {
				return StatusFeasible, bestValue, toBools(best)
			}
			return StatusUnknown, 0, nil
		}

		n := heap.Pop(fr).(*node)
		if haveIncumbent && n.bound >= bestValue {
			continue // bound, rest of frontier is no better
		}

		branchVar := nextFreeVar(n.assign)
		if branchVar < 0 {
			// fully assigned: a leaf that survived feasiblePartial pruning
			// at every ancestor is a feasible solution.
			value := objectiveValue(m, n.assign)
			if !haveIncumbent || value < bestValue {
				haveIncumbent = true
				bestValue = value
				best = append([]int8(nil), n.assign...)
			}
			continue
		}

		for _, val := range [2]int8{0, 1} {
			child := &node{assign: append([]int8(nil), n.assign...)}
			child.assign[branchVar] = val
			if !feasiblePartial(m, child.assign) {
				continue
			}
			child.bound = lowerBound(m, child.assign)
			if haveIncumbent && child.bound >= bestValue {
				continue
			}
			heap.Push(fr, child)
		}
	}

	if !haveIncumbent {
		return StatusInfeasible, 0, nil
	}
	return StatusOptimal, bestValue, toBools(best)
}

func nextFreeVar(assign []int8) int {
	for i, v := range assign {
		if v == unassigned {
			return i
		}
	}
	return -1
}

// feasiblePartial reports whether the constraints can still be satisfied
// given the current partial assignment, by checking each constraint's
// achievable range against its right-hand side.
func feasiblePartial(m *Model, assign []int8) bool {
	for _, c := range m.constraints {
		lo, hi := 0.0, 0.0
		for _, t := range c.terms {
			switch assign[t.v] {
			case 1:
				lo += t.coeff
				hi += t.coeff
			case 0:
				// contributes nothing
			default:
				if t.coeff >= 0 {
					hi += t.coeff
				} else {
					lo += t.coeff
				}
			}
		}
		if c.eq {
			if c.rhs < lo || c.rhs > hi {
				return false
			}
		} else if lo > c.rhs {
			return false
		}
	}
	return true
}

// lowerBound computes a valid lower bound on the objective achievable from
// this partial assignment: fixed-to-1 variables contribute their
// coefficient, fixed-to-0 variables contribute nothing, and free variables
// contribute their best case (0, since coefficients are non-negative).
func lowerBound(m *Model, assign []int8) float64 {
	total := 0.0
	for v, coeff := range m.objective {
		if assign[v] == 1 {
			total += coeff
		}
	}
	return total
}

func objectiveValue(m *Model, assign []int8) float64 {
	return lowerBound(m, assign)
}

func toBools(assign []int8) []bool {
	out := make([]bool, len(assign))
	for i, v := range assign {
		out[i] = v == 1
	}
	return out
}
