package workload

import "github.com/aalborg-palloc/palloc/sim"

// DurationSampler draws a request's total duration budget in minutes from
// the COWI-sourced duration bucket distribution, reweighted against a
// run's max request duration.
type DurationSampler struct {
	buckets []bucketRange
	pick    *sim.DiscreteSampler
}

type bucketRange struct {
	lo, hi int // inclusive, already clamped to maxDuration
}

// NewDurationSampler builds the reweighted bucket distribution for a given
// max request duration: buckets entirely above maxDuration are dropped, a
// bucket straddling maxDuration is scaled by the fraction of itself that
// survives the cut, and buckets fully inside keep their original weight.
func NewDurationSampler(maxDuration int) *DurationSampler {
	var ranges []bucketRange
	var weights []float64
	for _, b := range durationBuckets() {
		if b.start > maxDuration {
			continue
		}
		end := b.end
		weight := b.weight
		if end > maxDuration {
			full := float64(end-b.start) + 1
			kept := float64(maxDuration-b.start) + 1
			weight = b.weight * (kept / full)
			end = maxDuration
		}
		ranges = append(ranges, bucketRange{lo: b.start, hi: end})
		weights = append(weights, weight)
	}
	return &DurationSampler{
		buckets: ranges,
		pick:    sim.NewDiscreteSampler(weights),
	}
}

// Sample draws one duration: first picks a bucket, then a uniform integer
// within its range.
func (s *DurationSampler) Sample(e sim.Engine) int {
	idx := s.pick.Sample(e)
	b := s.buckets[idx]
	return sim.UniformInt(e, b.lo, b.hi)
}
