package particles

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/font/opentype"
)

// Default tuning. Spring and damping sit in the under-damped regime where
// the per-frame error contracts by sqrt(Damping) each step.
const (
	DefaultFontSize     = 96
	DefaultParticleSize = 2
	DefaultStride       = 4
	DefaultScatterMin   = 30
	DefaultScatterMax   = 110
	DefaultSpring       = 0.08
	DefaultDamping      = 0.82

	// AlphaThreshold is the midpoint of the opacity range. Raster pixels
	// strictly above it emit a particle.
	AlphaThreshold = 128
)

// ErrInvalidOptions is returned (wrapped) by Options.Validate.
var ErrInvalidOptions = errors.New("invalid particle options")

// Options configures sampling and the spring integrator. Zero values are
// replaced by the package defaults.
type Options struct {
	FontSize     float64
	ParticleSize int
	Stride       int

	ScatterMin float64
	ScatterMax float64

	Spring  float64
	Damping float64

	// Seed drives the scatter offsets. Zero picks a random seed.
	Seed uint64

	// Font overrides the built-in Go Bold face.
	Font *opentype.Font
}

// DefaultOptions returns the package defaults.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.ParticleSize == 0 {
		o.ParticleSize = DefaultParticleSize
	}
	if o.Stride == 0 {
		o.Stride = DefaultStride
	}
	switch {
	case o.ScatterMin == 0 && o.ScatterMax == 0:
		o.ScatterMin = DefaultScatterMin
		o.ScatterMax = DefaultScatterMax
	case o.ScatterMax == 0:
		o.ScatterMax = max(DefaultScatterMax, o.ScatterMin)
	}
	if o.Spring == 0 {
		o.Spring = DefaultSpring
	}
	if o.Damping == 0 {
		o.Damping = DefaultDamping
	}
	return o
}

// Validate reports whether the options (after defaults) keep the integrator
// stable and the sampler well-defined.
func (o Options) Validate() error {
	o = o.withDefaults()
	switch {
	case !finite(o.FontSize) || o.FontSize < 0:
		return fmt.Errorf("%w: font size %v must be positive", ErrInvalidOptions, o.FontSize)
	case o.ParticleSize < 0:
		return fmt.Errorf("%w: particle size %d must be positive", ErrInvalidOptions, o.ParticleSize)
	case o.Stride < 0:
		return fmt.Errorf("%w: stride %d must be positive", ErrInvalidOptions, o.Stride)
	case !finite(o.ScatterMin) || !finite(o.ScatterMax) || o.ScatterMin < 0 || o.ScatterMax < o.ScatterMin:
		return fmt.Errorf("%w: scatter range [%v, %v]", ErrInvalidOptions, o.ScatterMin, o.ScatterMax)
	case !finite(o.Spring) || o.Spring <= 0 || o.Spring > 1:
		return fmt.Errorf("%w: spring %v must be in (0, 1]", ErrInvalidOptions, o.Spring)
	case !finite(o.Damping) || o.Damping <= 0 || o.Damping >= 1:
		return fmt.Errorf("%w: damping %v must be in (0, 1)", ErrInvalidOptions, o.Damping)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
