// Package quality runs statistical sanity checks against the prng
// generation contract.
//
// The checks are coarse: they catch a broken shift, mask or carry that biases
// the stream, not subtle correlations.
package quality

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nozzle/prng"
	"github.com/nozzle/prng/internal/parallel"
)

var (
	// ErrNoSamples is returned when a check receives no data.
	ErrNoSamples = errors.New("no samples")
	// ErrTooFewBins is returned when a histogram would have fewer than two bins.
	ErrTooFewBins = errors.New("at least two bins are required")
	// ErrOutOfRange is returned when a sample lies outside [0, 1).
	ErrOutOfRange = errors.New("sample outside [0, 1)")
)

// Result is the outcome of a chi-square goodness of fit test.
type Result struct {
	Statistic float64
	DF        int
	PValue    float64
}

// ChiSquareUniform buckets samples into bins equal-width bins over [0, 1)
// and tests the counts against a uniform distribution.
func ChiSquareUniform(samples []float64, bins int) (Result, error) {
	if len(samples) == 0 {
		return Result{}, ErrNoSamples
	}
	if bins < 2 {
		return Result{}, ErrTooFewBins
	}
	for i, x := range samples {
		if !(x >= 0 && x < 1) {
			return Result{}, fmt.Errorf("sample %d = %v: %w", i, x, ErrOutOfRange)
		}
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	dividers := make([]float64, bins+1)
	floats.Span(dividers, 0, 1)
	observed := stat.Histogram(nil, dividers, sorted, nil)

	expected := make([]float64, bins)
	for i := range expected {
		expected[i] = 1
	}
	floats.Scale(float64(len(samples))/float64(bins), expected)

	chi := stat.ChiSquare(observed, expected)
	df := bins - 1
	dist := distuv.ChiSquared{K: float64(df)}
	return Result{Statistic: chi, DF: df, PValue: dist.Survival(chi)}, nil
}

// Tail compares the observed share of samples below 2^-K with its expected
// value.
type Tail struct {
	K        int
	Observed float64
	Expected float64
}

// ExponentProfile reports, for k = 1..maxK, the fraction of samples below
// 2^-k. For a uniform sampler each fraction tracks 2^-k.
func ExponentProfile(samples []float64, maxK int) []Tail {
	if maxK < 1 || len(samples) == 0 {
		return nil
	}
	counts := make([]float64, maxK)
	for _, x := range samples {
		for k := 1; k <= maxK; k++ {
			if x >= math.Ldexp(1, -k) {
				break
			}
			counts[k-1]++
		}
	}

	n := float64(len(samples))
	tails := make([]Tail, maxK)
	for k := 1; k <= maxK; k++ {
		tails[k-1] = Tail{
			K:        k,
			Observed: counts[k-1] / n,
			Expected: math.Ldexp(1, -k),
		}
	}
	return tails
}

// Moments returns the sample mean and unbiased variance. A uniform [0, 1)
// sampler has mean 1/2 and variance 1/12.
func Moments(samples []float64) (mean, variance float64) {
	return stat.MeanVariance(samples, nil)
}

// Report collects the checks run against a single seed.
type Report struct {
	Seed      uint32
	Config    prng.Config
	ChiSquare Result
	Mean      float64
	Variance  float64
	Tails     []Tail
	Err       error
}

// Options control a Battery run.
type Options struct {
	// Samples is the number of doubles drawn per seed.
	Samples int
	// Bins is the number of chi-square histogram bins.
	Bins int
	// Tails is the deepest 2^-k threshold reported by ExponentProfile.
	Tails int
	// Workers bounds the number of seeds checked concurrently.
	// 0 = auto-detect based on CPU cores.
	Workers int
}

// DefaultOptions returns options suitable for a quick check.
func DefaultOptions() Options {
	return Options{
		Samples: 100000,
		Bins:    64,
		Tails:   8,
		Workers: 0,
	}
}

// Battery draws opts.Samples doubles from a fresh generator per seed and runs
// every check on them. cfg.Seed is ignored; each report carries its own seed.
// Every seed gets its own generator, so seeds are checked concurrently.
func Battery(cfg prng.Config, seeds []uint32, opts Options) []Report {
	workers := opts.Workers
	if workers <= 0 {
		workers = parallel.NumWorkers()
	}

	return parallel.Map(len(seeds), workers, func(i int) Report {
		c := cfg
		c.Seed = seeds[i]
		r := Report{Seed: seeds[i], Config: c}

		g, err := prng.New(c)
		if err != nil {
			r.Err = err
			return r
		}

		samples := make([]float64, opts.Samples)
		for j := range samples {
			samples[j] = g.Float64()
		}

		r.ChiSquare, r.Err = ChiSquareUniform(samples, opts.Bins)
		r.Mean, r.Variance = Moments(samples)
		r.Tails = ExponentProfile(samples, opts.Tails)
		return r
	})
}
