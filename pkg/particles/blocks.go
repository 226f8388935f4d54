package particles

import "math/rand/v2"

const (
	DefaultGravity     = 0.6
	DefaultRestitution = 0.35
	DefaultSettleSpeed = 1.5
)

// Block is one falling square of the block text effect.
type Block struct {
	X, Y    float64
	TX, TY  float64
	VY      float64
	Size    int
	Settled bool
}

// Blocks drops the samples of a field from above the surface. Each block
// falls in its own column and collides with its target row: fast impacts
// bounce, slow ones settle exactly on the target.
type Blocks struct {
	Width  int
	Height int
	Blocks []Block

	Gravity     float64
	Restitution float64
	SettleSpeed float64

	rng *rand.Rand
}

// NewBlocks builds blocks from the targets of field and launches them.
func NewBlocks(field *Field, seed uint64) *Blocks {
	b := &Blocks{
		Width:       field.Width,
		Height:      field.Height,
		Blocks:      make([]Block, len(field.Particles)),
		Gravity:     DefaultGravity,
		Restitution: DefaultRestitution,
		SettleSpeed: DefaultSettleSpeed,
		rng:         newRand(seed),
	}
	for i, p := range field.Particles {
		b.Blocks[i] = Block{TX: p.TX, TY: p.TY, Size: p.Size}
	}
	b.Reset()
	return b
}

// Reset lifts every block back above the surface at a random height.
func (b *Blocks) Reset() {
	for i := range b.Blocks {
		blk := &b.Blocks[i]
		blk.X = blk.TX
		blk.Y = -float64(blk.Size) - b.rng.Float64()*float64(b.Height)
		blk.VY = 0
		blk.Settled = false
	}
}

// Step advances every unsettled block one frame.
func (b *Blocks) Step() {
	for i := range b.Blocks {
		blk := &b.Blocks[i]
		if blk.Settled {
			continue
		}

		blk.VY += b.Gravity
		blk.Y += blk.VY

		if blk.Y < blk.TY {
			continue
		}
		blk.Y = blk.TY
		if blk.VY > b.SettleSpeed {
			blk.VY = -blk.VY * b.Restitution
			continue
		}
		blk.VY = 0
		blk.Settled = true
	}
}

// Settled reports whether every block rests on its target.
func (b *Blocks) Settled() bool {
	for i := range b.Blocks {
		if !b.Blocks[i].Settled {
			return false
		}
	}
	return true
}
