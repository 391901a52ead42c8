// Package prng implements seedable pseudorandom number generation on top of
// two bit generators, the Mersenne Twister (MT19937) and
// Complementary-Multiply-With-Carry (CMWC4096).
//
// Every generator yields uniformly distributed 32-bit integers. Floats and
// doubles in [0, 1) are derived from that stream in one of two modes:
// Precise, which reaches every representable value in the range with its
// correct probability, and Compat, which scales a single integer draw the way
// the libtcod toolkit does.
//
// Basic usage:
//
//	g, err := prng.New(prng.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	x := g.Float64()
//
// Generators are not safe for concurrent use.
package prng

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nozzle/prng/source"
)

// Source is the generation contract: a stream of uniformly distributed
// 32-bit integers. Drawing advances the source's state.
type Source interface {
	Uint32() uint32
}

// Algorithm names a bit generator.
type Algorithm string

const (
	// MersenneTwister selects MT19937.
	MersenneTwister Algorithm = "mt19937"
	// CMWC selects Complementary-Multiply-With-Carry with a 4096 word lag.
	CMWC Algorithm = "cmwc4096"
)

// FloatMode selects how Float32 and Float64 derive values from the integer
// stream.
type FloatMode int

const (
	// Precise uses the bit-exact sampler. It is the zero value.
	Precise FloatMode = iota
	// Compat multiplies one integer draw by 1/(2^32-1).
	Compat
)

var (
	// ErrUnknownAlgorithm is returned for algorithm names that are not supported.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrUnknownFloatMode is returned for float mode names that are not supported.
	ErrUnknownFloatMode = errors.New("unknown float mode")
)

// ParseAlgorithm converts a case-insensitive name into an Algorithm.
// "mt" and "cmwc" are accepted as short forms.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mt19937", "mt", "mersenne":
		return MersenneTwister, nil
	case "cmwc4096", "cmwc":
		return CMWC, nil
	}
	return "", fmt.Errorf("parse algorithm %q: %w", name, ErrUnknownAlgorithm)
}

// ParseFloatMode converts "precise" or "compat" into a FloatMode.
func ParseFloatMode(name string) (FloatMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "precise", "":
		return Precise, nil
	case "compat", "libtcod":
		return Compat, nil
	}
	return 0, fmt.Errorf("parse float mode %q: %w", name, ErrUnknownFloatMode)
}

// String returns the canonical name of the mode.
func (m FloatMode) String() string {
	switch m {
	case Precise:
		return "precise"
	case Compat:
		return "compat"
	default:
		return fmt.Sprintf("FloatMode(%d)", int(m))
	}
}

// Config configures a Generator.
type Config struct {
	// Algorithm is the bit generator to use.
	// Default: MersenneTwister
	Algorithm Algorithm

	// Seed initializes the bit generator. Equal seeds give equal streams.
	// Default: 1
	Seed uint32

	// FloatMode selects how floats and doubles are derived.
	// Default: Precise
	FloatMode FloatMode
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Algorithm: MersenneTwister,
		Seed:      1,
		FloatMode: Precise,
	}
}

// Generator couples a bit generator with a float mode.
type Generator struct {
	src  Source
	mode FloatMode
}

// New creates a Generator from cfg. It fails only when cfg names an unknown
// algorithm or float mode.
func New(cfg Config) (*Generator, error) {
	if cfg.FloatMode != Precise && cfg.FloatMode != Compat {
		return nil, fmt.Errorf("new generator: %w: %s", ErrUnknownFloatMode, cfg.FloatMode)
	}
	var src Source
	switch cfg.Algorithm {
	case MersenneTwister:
		src = source.NewMersenneTwister(cfg.Seed)
	case CMWC:
		src = source.NewCMWC(cfg.Seed)
	default:
		return nil, fmt.Errorf("new generator: %w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}
	return &Generator{src: src, mode: cfg.FloatMode}, nil
}

// NewMersenneTwister returns a Generator backed by MT19937.
func NewMersenneTwister(seed uint32, mode FloatMode) *Generator {
	return &Generator{src: source.NewMersenneTwister(seed), mode: mode}
}

// NewCMWC returns a Generator backed by CMWC4096.
func NewCMWC(seed uint32, mode FloatMode) *Generator {
	return &Generator{src: source.NewCMWC(seed), mode: mode}
}

// FromSource wraps an existing Source. The Generator takes over the source;
// drawing from it elsewhere interleaves the two streams.
func FromSource(src Source, mode FloatMode) *Generator {
	return &Generator{src: src, mode: mode}
}

// Uint32 returns a value uniformly distributed over the full 32-bit range.
func (g *Generator) Uint32() uint32 {
	return g.src.Uint32()
}

// Float32 returns a value in [0, 1).
func (g *Generator) Float32() float32 {
	if g.mode == Compat {
		return CompatFloat32(g.src)
	}
	return Float32(g.src)
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	if g.mode == Compat {
		return CompatFloat64(g.src)
	}
	return Float64(g.src)
}

// Mode reports the float mode the generator was built with.
func (g *Generator) Mode() FloatMode {
	return g.mode
}

// Source returns the underlying bit generator.
func (g *Generator) Source() Source {
	return g.src
}

// String describes the generator without exposing its tables.
func (g *Generator) String() string {
	return fmt.Sprintf("%v (%s)", g.src, g.mode)
}
