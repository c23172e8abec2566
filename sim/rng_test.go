package sim

import "testing"

func TestNewEngine_UnknownName_Errors(t *testing.T) {
	if _, err := NewEngine("mersenne-twister", 1); err == nil {
		t.Fatal("expected an error for an unknown generator name")
	}
}

func TestNewEngine_KnownNames(t *testing.T) {
	for _, name := range []string{"pcg", "pcg-fast"} {
		if _, err := NewEngine(name, 42); err != nil {
			t.Fatalf("NewEngine(%q) returned unexpected error: %v", name, err)
		}
	}
}

func TestEngine_Deterministic(t *testing.T) {
	for _, name := range []string{"pcg", "pcg-fast"} {
		t.Run(name, func(t *testing.T) {
			a, _ := NewEngine(name, 12345)
			b, _ := NewEngine(name, 12345)
			for i := 0; i < 100; i++ {
				av, bv := a.NextUint32(), b.NextUint32()
				if av != bv {
					t.Fatalf("draw %d diverged: %d != %d", i, av, bv)
				}
			}
		})
	}
}

func TestEngine_DifferentSeedsDiverge(t *testing.T) {
	for _, name := range []string{"pcg", "pcg-fast"} {
		t.Run(name, func(t *testing.T) {
			a, _ := NewEngine(name, 1)
			b, _ := NewEngine(name, 2)
			same := true
			for i := 0; i < 8; i++ {
				if a.NextUint32() != b.NextUint32() {
					same = false
				}
			}
			if same {
				t.Fatal("expected different seeds to diverge within a handful of draws")
			}
		})
	}
}

func TestRotr32(t *testing.T) {
	if got := rotr32(1, 0); got != 1 {
		t.Fatalf("rotr32(1, 0) = %d, want 1", got)
	}
	// rotating the top bit right by 31 positions should land it at bit 0
	if got := rotr32(1<<31, 31); got != 1 {
		t.Fatalf("rotr32(1<<31, 31) = %d, want 1", got)
	}
}

func TestUniformInt_StaysInRange(t *testing.T) {
	e, _ := NewEngine("pcg", 7)
	for i := 0; i < 1000; i++ {
		v := UniformInt(e, 5, 9)
		if v < 5 || v > 9 {
			t.Fatalf("UniformInt(5,9) = %d, out of range", v)
		}
	}
}

func TestUniformInt_DegenerateRange(t *testing.T) {
	e, _ := NewEngine("pcg", 1)
	if v := UniformInt(e, 3, 3); v != 3 {
		t.Fatalf("UniformInt(3,3) = %d, want 3", v)
	}
	if v := UniformInt(e, 5, 2); v != 5 {
		t.Fatalf("UniformInt(5,2) = %d, want lo=5", v)
	}
}

func TestPoisson_ZeroMeanAlwaysZero(t *testing.T) {
	e, _ := NewEngine("pcg", 1)
	for i := 0; i < 50; i++ {
		if v := Poisson(e, 0); v != 0 {
			t.Fatalf("Poisson(0) = %d, want 0", v)
		}
	}
}

func TestPoisson_AverageNearMean(t *testing.T) {
	e, _ := NewEngine("pcg", 99)
	const mean = 5.0
	const trials = 20000
	total := 0
	for i := 0; i < trials; i++ {
		total += Poisson(e, mean)
	}
	avg := float64(total) / trials
	if avg < mean*0.9 || avg > mean*1.1 {
		t.Fatalf("Poisson average %f too far from mean %f", avg, mean)
	}
}

func TestDiscreteSampler_RespectsWeighting(t *testing.T) {
	e, _ := NewEngine("pcg", 3)
	s := NewDiscreteSampler([]float64{0, 1, 0})
	for i := 0; i < 500; i++ {
		if idx := s.Sample(e); idx != 1 {
			t.Fatalf("expected index 1 with all weight there, got %d", idx)
		}
	}
}

func TestNewDiscreteSampler_PanicsOnZeroWeight(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for all-zero weights")
		}
	}()
	NewDiscreteSampler([]float64{0, 0})
}
