package workload

// TrafficWeights are hour-of-day Poisson rate multipliers derived from
// Aalborg TomTom traffic counts, one entry per hour of the day.
var TrafficWeights = [24]float64{
	78.0 / 365, 66.0 / 365, 51.0 / 365, 69.0 / 365,
	39.0 / 365, 78.0 / 365, 246.0 / 365, 708.0 / 365,
	558.0 / 365, 432.0 / 365, 501.0 / 365, 540.0 / 365,
	582.0 / 365, 585.0 / 365, 690.0 / 365, 915.0 / 365,
	705.0 / 365, 501.0 / 365, 381.0 / 365, 297.0 / 365,
	264.0 / 365, 213.0 / 365, 156.0 / 365, 105.0 / 365,
}

// bucket is one entry of the request-duration distribution: a closed
// interval of minutes and its unscaled weight.
type bucket struct {
	start, end int
	weight     float64
}

// durationBuckets are the COWI-sourced request duration buckets, in
// minutes, before any max-duration reweighting is applied. The final
// bucket's upper end is unbounded, represented here by a sentinel large
// enough that any realistic MaxRequestDuration clamps it.
func durationBuckets() []bucket {
	return []bucket{
		{0, 60, 0.14},
		{61, 120, 0.13},
		{121, 240, 0.11},
		{241, 480, 0.17},
		{481, 1440, 0.28},
		{1441, 2880, 0.09},
		{2881, 1 << 30, 0.08},
	}
}
