package particles

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *opentype.Font
	defaultFontErr  error
)

func builtinFont() (*opentype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = opentype.Parse(gobold.TTF)
	})
	return defaultFont, defaultFontErr
}

// Sample rasterizes text centered on a width x height surface and returns
// one particle per opaque grid cell. A zero-sized surface yields an empty
// field and no error.
func Sample(text string, width, height int, opts Options) (*Field, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	field := &Field{
		Width:   width,
		Height:  height,
		spring:  opts.Spring,
		damping: opts.Damping,
	}
	if width <= 0 || height <= 0 {
		field.Width, field.Height = 0, 0
		return field, nil
	}

	raster, err := rasterize(text, width, height, opts)
	if err != nil {
		return nil, err
	}

	rng := newRand(opts.Seed)
	for y := 0; y < height; y += opts.Stride {
		for x := 0; x < width; x += opts.Stride {
			if raster.AlphaAt(x, y).A <= AlphaThreshold {
				continue
			}
			field.Particles = append(field.Particles, newParticle(float64(x), float64(y), opts, rng))
		}
	}

	return field, nil
}

func newParticle(tx, ty float64, opts Options, rng *rand.Rand) Particle {
	angle := rng.Float64() * 2 * math.Pi
	dist := opts.ScatterMin + rng.Float64()*(opts.ScatterMax-opts.ScatterMin)
	ox := tx + math.Cos(angle)*dist
	oy := ty + math.Sin(angle)*dist

	return Particle{
		X: ox, Y: oy,
		TX: tx, TY: ty,
		OX: ox, OY: oy,
		Size: opts.ParticleSize,
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// rasterize draws text once onto an alpha mask with its ink box centered.
func rasterize(text string, width, height int, opts Options) (*image.Alpha, error) {
	f := opts.Font
	if f == nil {
		var err error
		if f, err = builtinFont(); err != nil {
			return nil, fmt.Errorf("parse builtin font: %w", err)
		}
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	mask := image.NewAlpha(image.Rect(0, 0, width, height))

	ink, _ := font.BoundString(face, text)
	inkW := ink.Max.X - ink.Min.X
	inkH := ink.Max.Y - ink.Min.Y

	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot: fixed.Point26_6{
			X: (fixed.I(width)-inkW)/2 - ink.Min.X,
			Y: (fixed.I(height)-inkH)/2 - ink.Min.Y,
		},
	}
	d.DrawString(text)

	return mask, nil
}
