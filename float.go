package prng

import (
	"math"

	"github.com/nozzle/prng/internal/bitbuf"
)

const (
	randDiv       = float32(1.0 / 0xffffffff)
	randDivDouble = 1.0 / 0xffffffff

	float32Bias     = 127
	float32Mantissa = 23
	float64Bias     = 1023
	float64Mantissa = 52
)

// CompatFloat32 scales one integer draw into the unit interval. It only
// reaches a small subset of the representable values, and the 128 largest
// draws round to 1.0.
func CompatFloat32(src Source) float32 {
	return float32(src.Uint32()) * randDiv
}

// CompatFloat64 scales one integer draw into [0, 1]. The upper bound is only
// hit by the draw 0xffffffff.
func CompatFloat64(src Source) float64 {
	return float64(src.Uint32()) * randDivDouble
}

// Float32 samples a float32 uniformly from [0, 1) such that every
// representable value in the range can occur, with probability proportional
// to the width of the interval it stands for.
//
// The exponent is chosen by counting zero bits before the first one bit
// (each step halves the binade), then 23 mantissa bits are drawn from a fresh
// word. See Allen B. Downey, "Generating Pseudo-random Floating-Point Values".
func Float32(src Source) float32 {
	for {
		bits := bitbuf.NewReader(src)
		exp := sampleExponent(bits, float32Bias)

		mantissa := src.Uint32() & (1<<float32Mantissa - 1)
		if mantissa == 0 && bits.Bit() != 0 {
			exp++
		}
		// Rounding up out of the top binade would give exactly 1.0.
		if exp >= float32Bias {
			continue
		}
		return math.Float32frombits(exp<<float32Mantissa | mantissa)
	}
}

// Float64 is the double precision counterpart of Float32. The 52 mantissa
// bits come from two words, the first supplying the high half.
func Float64(src Source) float64 {
	for {
		bits := bitbuf.NewReader(src)
		exp := uint64(sampleExponent(bits, float64Bias))

		hi := uint64(src.Uint32())
		lo := uint64(src.Uint32())
		mantissa := (hi<<32 | lo) & (1<<float64Mantissa - 1)
		if mantissa == 0 && bits.Bit() != 0 {
			exp++
		}
		if exp >= float64Bias {
			continue
		}
		return math.Float64frombits(exp<<float64Mantissa | mantissa)
	}
}

// sampleExponent returns a biased exponent in [0, bias-1], geometrically
// distributed so that each lower binade is half as likely as the one above.
func sampleExponent(bits *bitbuf.Reader, bias uint32) uint32 {
	exp := bias - 1
	for exp > 0 {
		if bits.Bit() != 0 {
			break
		}
		exp--
	}
	return exp
}
