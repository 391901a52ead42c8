package prng_test

import (
	"math"
	"testing"

	"github.com/nozzle/prng"
	"github.com/nozzle/prng/quality"
)

// script replays a fixed list of words, repeating the last one forever.
type script struct {
	w     []uint32
	draws int
}

func (s *script) Uint32() uint32 {
	i := s.draws
	if i >= len(s.w) {
		i = len(s.w) - 1
	}
	s.draws++
	return s.w[i]
}

func TestFloat32Script(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
		want  float32
		draws int
	}{
		{"all zero bits", []uint32{0}, 0, 5},
		{"all one bits", []uint32{0xffffffff}, math.Nextafter32(1, 0), 2},
		{"half", []uint32{1, 0}, 0.5, 2},
		{"rounded up into upper binade", []uint32{0b110, 0}, 0.5, 2},
		{"mantissa ignores high bits", []uint32{1, 0xff800000}, 0.5, 2},
		{"one is redrawn", []uint32{0b11, 0, 0xffffffff}, math.Nextafter32(1, 0), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &script{w: tt.words}
			got := prng.Float32(src)
			if got != tt.want {
				t.Errorf("got %v (%#x), expected %v", got, math.Float32bits(got), tt.want)
			}
			if src.draws != tt.draws {
				t.Errorf("draws: got %d, expected %d", src.draws, tt.draws)
			}
		})
	}
}

func TestFloat64Script(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
		want  float64
		draws int
	}{
		// 1022 exponent bits span 32 words, then two mantissa words.
		{"all zero bits", []uint32{0}, 0, 34},
		{"all one bits", []uint32{0xffffffff}, math.Nextafter(1, 0), 3},
		{"half", []uint32{1, 0, 0}, 0.5, 3},
		{"high word first", []uint32{1, 0x00000001, 0}, 0.5 + math.Ldexp(1, -21), 3},
		{"low word second", []uint32{1, 0, 1}, 0.5 + math.Ldexp(1, -53), 3},
		{"one is redrawn", []uint32{0b11, 0, 0, 0xffffffff}, math.Nextafter(1, 0), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &script{w: tt.words}
			got := prng.Float64(src)
			if got != tt.want {
				t.Errorf("got %v (%#x), expected %v", got, math.Float64bits(got), tt.want)
			}
			if src.draws != tt.draws {
				t.Errorf("draws: got %d, expected %d", src.draws, tt.draws)
			}
		})
	}
}

func TestSubnormalReachable(t *testing.T) {
	// 126 zero bits drive the exponent to 0; the mantissa word then lands in
	// the subnormal range.
	src := &script{w: []uint32{0, 0, 0, 0, 1, 0}}
	got := prng.Float32(src)
	if got != math.Float32frombits(1) {
		t.Errorf("got %v, expected smallest subnormal", got)
	}
}

func TestCompat(t *testing.T) {
	src := &script{w: []uint32{0}}
	if got := prng.CompatFloat32(src); got != 0 {
		t.Errorf("CompatFloat32(0) = %v", got)
	}
	if got := prng.CompatFloat64(src); got != 0 {
		t.Errorf("CompatFloat64(0) = %v", got)
	}

	src = &script{w: []uint32{1 << 31}}
	if got := prng.CompatFloat32(src); got != 0.5 {
		t.Errorf("CompatFloat32(2^31) = %v, expected 0.5", got)
	}
	want := float64(1<<31) * (1.0 / 4294967295.0)
	if got := prng.CompatFloat64(src); got != want {
		t.Errorf("CompatFloat64(2^31) = %v, expected %v", got, want)
	}
	if src.draws != 2 {
		t.Errorf("compat draws: got %d, expected 2", src.draws)
	}
}

func TestFloatRange(t *testing.T) {
	for _, algo := range []prng.Algorithm{prng.MersenneTwister, prng.CMWC} {
		for _, mode := range []prng.FloatMode{prng.Precise, prng.Compat} {
			g, err := prng.New(prng.Config{Algorithm: algo, Seed: 20190101, FloatMode: mode})
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 10000; i++ {
				if f := g.Float32(); !(f >= 0 && f < 1) {
					t.Fatalf("%s/%s Float32 draw %d = %v", algo, mode, i, f)
				}
				if d := g.Float64(); !(d >= 0 && d < 1) {
					t.Fatalf("%s/%s Float64 draw %d = %v", algo, mode, i, d)
				}
			}
		}
	}
}

func TestExponentDistribution(t *testing.T) {
	const n = 200000

	for _, algo := range []prng.Algorithm{prng.MersenneTwister, prng.CMWC} {
		g, err := prng.New(prng.Config{Algorithm: algo, Seed: 42})
		if err != nil {
			t.Fatal(err)
		}

		doubles := make([]float64, n)
		singles := make([]float64, n)
		for i := range doubles {
			doubles[i] = g.Float64()
			singles[i] = float64(g.Float32())
		}

		for name, samples := range map[string][]float64{"double": doubles, "float": singles} {
			for _, tail := range quality.ExponentProfile(samples, 6) {
				// Four standard deviations of a binomial proportion.
				tol := 4 * math.Sqrt(tail.Expected*(1-tail.Expected)/n)
				if math.Abs(tail.Observed-tail.Expected) > tol {
					t.Errorf("%s %s: fraction below 2^-%d = %.5f, expected %.5f ± %.5f",
						algo, name, tail.K, tail.Observed, tail.Expected, tol)
				}
			}
		}
	}
}
