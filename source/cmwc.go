package source

import "fmt"

const (
	cmwcR        = 4096
	cmwcA        = 18782
	cmwcMaxCarry = 809430660 // upper bound on the initial carry recommended by Marsaglia
	lcgMul       = 1103515245
	lcgInc       = 12345
)

// CMWC is Marsaglia's Complementary-Multiply-With-Carry generator with a lag
// of 4096 words.
type CMWC struct {
	q   [cmwcR]uint32
	c   uint32
	cur int
}

// NewCMWC creates a CMWC4096 generator seeded with seed.
func NewCMWC(seed uint32) *CMWC {
	g := &CMWC{}
	g.Seed(seed)
	return g
}

// Seed fills the lag table from a glibc-style LCG started at seed and derives
// the initial carry from one further LCG step.
func (g *CMWC) Seed(seed uint32) {
	s := seed
	for i := range g.q {
		s = s*lcgMul + lcgInc
		g.q[i] = s
	}
	g.c = (s*lcgMul + lcgInc) % cmwcMaxCarry
	g.cur = 0
}

// Uint32 returns the next output.
func (g *CMWC) Uint32() uint32 {
	g.cur = (g.cur + 1) & (cmwcR - 1)
	t := cmwcA*uint64(g.q[g.cur]) + uint64(g.c)
	g.c = uint32(t >> 32)
	x := uint32(t + uint64(g.c))
	if x < g.c {
		x++
		g.c++
	}
	if x+1 == 0 {
		g.c++
		x = 0
	}
	g.q[g.cur] = 0xfffffffe - x
	return g.q[g.cur]
}

// Clone returns an independent copy of the generator state.
func (g *CMWC) Clone() *CMWC {
	c := *g
	return &c
}

// String reports the carry and cursor; the lag table is never printed.
func (g *CMWC) String() string {
	return fmt.Sprintf("CMWC{c: %d, cur: %d}", g.c, g.cur)
}
