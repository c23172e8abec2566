// Implements per-run Result and the Kahan-summed multi-run
// AggregatedResult. Kahan summation is needed here, and nowhere else in this
// codebase's stdlib-only code, because a run can accumulate cost/duration
// sums across thousands of batch steps where naive summation visibly
// drifts.

package sim

import (
	"math"

	"github.com/aalborg-palloc/palloc/sim/trace"
)

// Result is one Monte Carlo run's outcome.
type Result struct {
	TotalDroppedRequests   int
	TotalDuration          int
	TotalCost              float64
	TotalVariableCount     int
	TotalProcessedRequests int // sum of N across every batch invocation this run made
	RequestsGenerated      int
	RequestsScheduled      int
	RequestsUnassigned     int
	Trace                  trace.List
}

// AggregatedResult summarizes R independent runs. Settings echoes the
// simulator configuration the runs shared, for reproducibility.
type AggregatedResult struct {
	TotalDroppedRequests int               `json:"total_dropped_requests"`
	AvgDuration          float64           `json:"avg_duration"`
	AvgCost              float64           `json:"avg_cost"`
	AvgVarCount          float64           `json:"avg_var_count"`
	RequestsGenerated    int               `json:"requests_generated"`
	RequestsScheduled    int               `json:"requests_scheduled"`
	RequestsUnassigned   int               `json:"requests_unassigned"`
	TimeElapsedMillis    int64             `json:"time_elapsed"`
	Settings             SimulatorSettings `json:"settings"`
	Traces               trace.Lists       `json:"traces,omitempty"`
}

// kahanSum accumulates values with compensated summation (Neumaier's
// variant of Kahan summation), correcting for the low-order bits lost on
// each addition, including when the addend is larger than the running sum.
// total always holds the compensated result.
type kahanSum struct {
	total float64
	sum   float64
	c     float64
}

func (k *kahanSum) add(v float64) {
	t := k.sum + v
	if math.Abs(k.sum) >= math.Abs(v) {
		k.c += (k.sum - t) + v
	} else {
		k.c += (v - t) + k.sum
	}
	k.sum = t
	k.total = k.sum + k.c
}

// Aggregate combines R per-run Results into one AggregatedResult. Sums are
// Kahan-accumulated so the result is invariant (to floating-point rounding)
// under run-order permutation.
func Aggregate(results []*Result, settings SimulatorSettings, outputTrace bool, elapsedMillis int64) *AggregatedResult {
	var durationSum, costSum, varCountSum kahanSum
	var requestsScheduledSum, processedRequestsSum kahanSum

	agg := &AggregatedResult{Settings: settings, TimeElapsedMillis: elapsedMillis}

	for _, r := range results {
		agg.TotalDroppedRequests += r.TotalDroppedRequests
		agg.RequestsGenerated += r.RequestsGenerated
		agg.RequestsScheduled += r.RequestsScheduled
		agg.RequestsUnassigned += r.RequestsUnassigned

		durationSum.add(float64(r.TotalDuration))
		costSum.add(r.TotalCost)
		varCountSum.add(float64(r.TotalVariableCount))
		requestsScheduledSum.add(float64(r.RequestsScheduled))
		processedRequestsSum.add(float64(r.TotalProcessedRequests))

		if outputTrace {
			agg.Traces = append(agg.Traces, r.Trace)
		}
	}

	if requestsScheduledSum.total != 0 {
		agg.AvgDuration = durationSum.total / requestsScheduledSum.total
	}
	if processedRequestsSum.total != 0 {
		agg.AvgCost = costSum.total / processedRequestsSum.total
	}

	totalBatchSteps := settings.Timesteps / settings.BatchInterval
	if settings.Timesteps%settings.BatchInterval != 0 {
		totalBatchSteps++
	}
	if totalBatchSteps != 0 {
		agg.AvgVarCount = varCountSum.total / float64(totalBatchSteps)
	}

	return agg
}
