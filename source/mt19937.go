// Package source provides the bit generators behind the prng generation
// contract: the Mersenne Twister (MT19937) and Marsaglia's
// Complementary-Multiply-With-Carry generator (CMWC4096).
//
// Both generators own their state outright and are plain values: copying one
// (or calling Clone) takes a snapshot that replays the same stream. Neither is
// safe for concurrent use.
package source

import "fmt"

const (
	mtN        = 624
	mtM        = 397
	mtInit     = 1812433253
	mtInitS    = 30
	matrixA    = 0x9908b0df
	separation = 31
	lowerMask  = 1 << separation
	upperMask  = ^uint32(lowerMask)
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000
	temperingS = 7
	temperingT = 15
	temperingU = 11
	temperingL = 18
)

// MersenneTwister is the MT19937 generator.
type MersenneTwister struct {
	mt  [mtN]uint32
	cur int
}

// NewMersenneTwister creates a Mersenne Twister seeded with seed.
func NewMersenneTwister(seed uint32) *MersenneTwister {
	mt := &MersenneTwister{}
	mt.Seed(seed)
	return mt
}

// Seed reinitializes the table from seed. The cursor is parked at the end of
// the table so the first draw always twists.
func (mt *MersenneTwister) Seed(seed uint32) {
	mt.mt[0] = seed
	for i := 1; i < mtN; i++ {
		mt.mt[i] = mtInit*(mt.mt[i-1]^(mt.mt[i-1]>>mtInitS)) + uint32(i)
	}
	mt.cur = mtN
}

// twist regenerates all 624 words of the table.
func (mt *MersenneTwister) twist() {
	for i := 0; i < mtN; i++ {
		// lowerMask selects the top bit of the current word, upperMask the
		// remaining 31 bits of its successor.
		y := (mt.mt[i] & lowerMask) | (mt.mt[(i+1)%mtN] & upperMask)
		next := mt.mt[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		mt.mt[i] = next
	}
	mt.cur = 0
}

// Uint32 returns the next tempered 32-bit output.
func (mt *MersenneTwister) Uint32() uint32 {
	if mt.cur == mtN {
		mt.twist()
	}

	y := mt.mt[mt.cur]
	mt.cur++

	// Tempering
	y ^= y >> temperingU
	y ^= (y << temperingS) & temperingB
	y ^= (y << temperingT) & temperingC
	y ^= y >> temperingL

	return y
}

// Clone returns an independent copy of the generator state.
func (mt *MersenneTwister) Clone() *MersenneTwister {
	c := *mt
	return &c
}

// String reports the cursor position only; the table is never printed.
func (mt *MersenneTwister) String() string {
	return fmt.Sprintf("MersenneTwister{cur: %d}", mt.cur)
}
