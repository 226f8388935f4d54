package particles

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHI(t *testing.T, seed uint64) *Field {
	t.Helper()
	f, err := Sample("HI", 200, 100, Options{FontSize: 40, Stride: 4, Seed: seed})
	require.NoError(t, err)
	return f
}

func TestSample_HIScenario(t *testing.T) {
	f := sampleHI(t, 1)

	require.Greater(t, f.Len(), 0)
	for _, p := range f.Particles {
		assert.GreaterOrEqual(t, p.TY, 30.0)
		assert.LessOrEqual(t, p.TY, 70.0)
		assert.GreaterOrEqual(t, p.TX, 60.0)
		assert.LessOrEqual(t, p.TX, 140.0)
		assert.Equal(t, DefaultParticleSize, p.Size)
	}
}

func TestSample_TargetsAreDeterministic(t *testing.T) {
	a := sampleHI(t, 1)
	b := sampleHI(t, 99)

	require.Equal(t, a.Len(), b.Len())
	for i := range a.Particles {
		assert.Equal(t, a.Particles[i].TX, b.Particles[i].TX)
		assert.Equal(t, a.Particles[i].TY, b.Particles[i].TY)
	}
}

func TestSample_SameSeedSameOrigins(t *testing.T) {
	a := sampleHI(t, 7)
	b := sampleHI(t, 7)

	for i := range a.Particles {
		assert.Equal(t, a.Particles[i].OX, b.Particles[i].OX)
		assert.Equal(t, a.Particles[i].OY, b.Particles[i].OY)
	}
}

func TestSample_TargetsOnStrideGrid(t *testing.T) {
	f, err := Sample("W", 120, 120, Options{FontSize: 80, Stride: 6, Seed: 3})
	require.NoError(t, err)
	require.Greater(t, f.Len(), 0)

	for _, p := range f.Particles {
		assert.Zero(t, int(p.TX)%6)
		assert.Zero(t, int(p.TY)%6)
	}
}

func TestSample_ScatterDistanceWithinRange(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		f := sampleHI(t, seed)
		for _, p := range f.Particles {
			d := math.Hypot(p.OX-p.TX, p.OY-p.TY)
			assert.GreaterOrEqual(t, d, DefaultScatterMin-1e-9)
			assert.LessOrEqual(t, d, DefaultScatterMax+1e-9)
		}
	}
}

func TestSample_StartsScattered(t *testing.T) {
	f := sampleHI(t, 1)
	for _, p := range f.Particles {
		assert.Equal(t, p.OX, p.X)
		assert.Equal(t, p.OY, p.Y)
		assert.Zero(t, p.VX)
		assert.Zero(t, p.VY)
	}
}

func TestSample_ZeroSurfaceIsNoop(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 100},
		{"zero height", 200, 0},
		{"both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Sample("HI", tt.width, tt.height, Options{})
			require.NoError(t, err)
			assert.Zero(t, f.Len())
		})
	}
}

func TestSample_EmptyText(t *testing.T) {
	f, err := Sample("", 200, 100, Options{})
	require.NoError(t, err)
	assert.Zero(t, f.Len())
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"custom stable", Options{Spring: 0.2, Damping: 0.5}, false},
		{"damping one", Options{Damping: 1}, true},
		{"negative damping", Options{Damping: -0.2}, true},
		{"spring too strong", Options{Spring: 1.5}, true},
		{"negative stride", Options{Stride: -1}, true},
		{"inverted scatter", Options{ScatterMin: 50, ScatterMax: 10}, true},
		{"scatter min only", Options{ScatterMin: 50}, false},
		{"scatter min above default max", Options{ScatterMin: 200}, false},
		{"nan font size", Options{FontSize: math.NaN()}, true},
		{"infinite font size", Options{FontSize: math.Inf(1)}, true},
		{"nan spring", Options{Spring: math.NaN()}, true},
		{"nan damping", Options{Damping: math.NaN()}, true},
		{"infinite damping", Options{Damping: math.Inf(-1)}, true},
		{"nan scatter min", Options{ScatterMin: math.NaN(), ScatterMax: 50}, true},
		{"infinite scatter max", Options{ScatterMax: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptions_ScatterMaxDefaultsIndependently(t *testing.T) {
	o := Options{ScatterMin: 50}.withDefaults()
	assert.Equal(t, 50.0, o.ScatterMin)
	assert.Equal(t, float64(DefaultScatterMax), o.ScatterMax)

	o = Options{ScatterMin: 200}.withDefaults()
	assert.Equal(t, 200.0, o.ScatterMax)
}

func TestField_ConvergesToTargetWhenHovered(t *testing.T) {
	f := sampleHI(t, 1)

	for i := 0; i < 600; i++ {
		f.Step(true)
	}
	assert.Less(t, f.MaxDeviation(true), 1.0)
}

func TestField_ConvergesToOriginWhenNotHovered(t *testing.T) {
	f := sampleHI(t, 1)

	for i := 0; i < 300; i++ {
		f.Step(true)
	}
	for i := 0; i < 600; i++ {
		f.Step(false)
	}
	assert.Less(t, f.MaxDeviation(false), 1.0)
}

func TestField_ToggleChangesVelocityNotPosition(t *testing.T) {
	f := sampleHI(t, 1)
	for i := 0; i < 15; i++ {
		f.Step(true)
	}

	before := f.clone()
	f.Step(false)

	for i := range f.Particles {
		prev := before.Particles[i]
		cur := f.Particles[i]

		dx, dy := cur.X-prev.X, cur.Y-prev.Y
		assert.InDelta(t, cur.VX, dx, 1e-9)
		assert.InDelta(t, cur.VY, dy, 1e-9)

		gx, gy := prev.Goal(false)
		bound := (math.Hypot(prev.VX, prev.VY) + math.Hypot(gx-prev.X, gy-prev.Y)*DefaultSpring) * DefaultDamping
		assert.LessOrEqual(t, math.Hypot(dx, dy), bound+1e-9)
	}
}

func TestRender_DrawsRoundedSquares(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	dst.Set(0, 0, color.White)

	Render(dst, []Particle{{X: 10.4, Y: 5.6, Size: 2}}, color.Black)

	assert.Equal(t, uint8(0), dst.RGBAAt(0, 0).A, "surface should be cleared")
	assert.Equal(t, uint8(0xff), dst.RGBAAt(10, 6).A)
	assert.Equal(t, uint8(0xff), dst.RGBAAt(11, 7).A)
	assert.Equal(t, uint8(0), dst.RGBAAt(9, 6).A)
	assert.Equal(t, uint8(0), dst.RGBAAt(12, 6).A)
}

func TestRender_ClipsOffSurfaceParticles(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))

	assert.NotPanics(t, func() {
		Render(dst, []Particle{{X: -50, Y: -50, Size: 3}, {X: 9.2, Y: 9.2, Size: 3}}, color.Black)
	})
	assert.Equal(t, uint8(0xff), dst.RGBAAt(9, 9).A)
}

func TestBlocks_SettleOnTargets(t *testing.T) {
	f := sampleHI(t, 1)
	b := NewBlocks(f, 5)

	for _, blk := range b.Blocks {
		assert.Less(t, blk.Y, 0.0, "blocks launch above the surface")
	}

	for i := 0; i < 2000 && !b.Settled(); i++ {
		b.Step()
	}
	require.True(t, b.Settled())
	for _, blk := range b.Blocks {
		assert.Equal(t, blk.TX, blk.X)
		assert.Equal(t, blk.TY, blk.Y)
		assert.Zero(t, blk.VY)
	}

	b.Reset()
	assert.False(t, b.Settled())
}

func TestBlocks_BounceOnFastImpact(t *testing.T) {
	b := &Blocks{
		Blocks:      []Block{{Y: 0, TY: 100, Size: 2}},
		Gravity:     DefaultGravity,
		Restitution: DefaultRestitution,
		SettleSpeed: DefaultSettleSpeed,
	}

	bounced := false
	for i := 0; i < 500 && !b.Settled(); i++ {
		b.Step()
		if b.Blocks[0].VY < 0 {
			bounced = true
		}
		assert.LessOrEqual(t, b.Blocks[0].Y, 100.0)
	}
	assert.True(t, bounced)
	assert.True(t, b.Settled())
}
