package sim

import (
	"math"
	"testing"
)

func TestKahanSum_MatchesNaiveForSmallInputs(t *testing.T) {
	var k kahanSum
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	naive := 0.0
	for _, v := range values {
		k.add(v)
		naive += v
	}
	if math.Abs(k.total-naive) > 1e-9 {
		t.Fatalf("kahanSum diverged from naive sum: %f vs %f", k.total, naive)
	}
}

func TestKahanSum_OrderInvariant(t *testing.T) {
	a := []float64{1e16, 1, -1e16, 1}
	b := []float64{1, 1, 1e16, -1e16}

	var ka, kb kahanSum
	for _, v := range a {
		ka.add(v)
	}
	for _, v := range b {
		kb.add(v)
	}
	if ka.total != kb.total {
		t.Fatalf("kahan sums diverged by summation order: %f vs %f", ka.total, kb.total)
	}
	if ka.total != 2 {
		t.Fatalf("expected exact sum of 2, got %f", ka.total)
	}
}

func TestAggregate_EmptyResults(t *testing.T) {
	settings := SimulatorSettings{Timesteps: 100, BatchInterval: 10}
	agg := Aggregate(nil, settings, false, 1)
	if agg.AvgDuration != 0 || agg.AvgCost != 0 || agg.TotalDroppedRequests != 0 {
		t.Fatalf("expected a zeroed aggregate for no results, got %+v", agg)
	}
}

func TestAggregate_ComputesAverages(t *testing.T) {
	results := []*Result{
		{
			TotalDroppedRequests:   1,
			TotalDuration:          20,
			TotalCost:              100,
			TotalVariableCount:     6,
			TotalProcessedRequests: 2,
			RequestsGenerated:      5,
			RequestsScheduled:      2,
			RequestsUnassigned:     1,
		},
		{
			TotalDroppedRequests:   3,
			TotalDuration:          40,
			TotalCost:              200,
			TotalVariableCount:     12,
			TotalProcessedRequests: 4,
			RequestsGenerated:      7,
			RequestsScheduled:      4,
			RequestsUnassigned:     3,
		},
	}
	settings := SimulatorSettings{Timesteps: 100, BatchInterval: 10}
	agg := Aggregate(results, settings, false, 2)

	if agg.TotalDroppedRequests != 4 {
		t.Fatalf("TotalDroppedRequests = %d, want 4", agg.TotalDroppedRequests)
	}
	if agg.RequestsGenerated != 12 || agg.RequestsScheduled != 6 || agg.RequestsUnassigned != 4 {
		t.Fatalf("unexpected totals: %+v", agg)
	}
	// durationSum = 60, requestsScheduledSum = 6 -> avg = 10
	if agg.AvgDuration != 10 {
		t.Fatalf("AvgDuration = %f, want 10", agg.AvgDuration)
	}
	// costSum = 300, processedRequestsSum = 6 -> avg = 50
	if agg.AvgCost != 50 {
		t.Fatalf("AvgCost = %f, want 50", agg.AvgCost)
	}
	// varCountSum = 18, totalBatchSteps = ceil(100/10) = 10 -> avg = 1.8
	if agg.AvgVarCount != 1.8 {
		t.Fatalf("AvgVarCount = %f, want 1.8", agg.AvgVarCount)
	}
	if agg.TimeElapsedMillis != 2 {
		t.Fatalf("TimeElapsedMillis = %d, want 2", agg.TimeElapsedMillis)
	}
}

func TestAggregate_TracesOnlyIncludedWhenRequested(t *testing.T) {
	results := []*Result{{Trace: nil}, {Trace: nil}}

	settings := SimulatorSettings{Timesteps: 100, BatchInterval: 10}

	withTrace := Aggregate(results, settings, true, 0)
	if len(withTrace.Traces) != len(results) {
		t.Fatalf("expected one trace entry per run when trace output is on, got %d", len(withTrace.Traces))
	}

	withoutTrace := Aggregate(results, settings, false, 0)
	if withoutTrace.Traces != nil {
		t.Fatalf("expected nil traces when trace output is off, got %v", withoutTrace.Traces)
	}
}
