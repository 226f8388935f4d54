package particles

import "math"

// Particle is one point of the cloud. Target and origin are fixed for the
// lifetime of the particle set; position and velocity change every frame.
type Particle struct {
	X, Y   float64
	TX, TY float64
	OX, OY float64
	VX, VY float64
	Size   int
}

// Goal returns the position the particle is currently pulled toward.
func (p *Particle) Goal(hovered bool) (float64, float64) {
	if hovered {
		return p.TX, p.TY
	}
	return p.OX, p.OY
}

// Field is the particle set generated from one text string on one surface.
// Count and order never change; regenerate by sampling again.
type Field struct {
	Width     int
	Height    int
	Particles []Particle

	spring  float64
	damping float64
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.Particles)
}

// Spring returns the spring constant the field integrates with.
func (f *Field) Spring() float64 { return f.spring }

// Damping returns the per-frame velocity damping.
func (f *Field) Damping() float64 { return f.damping }

// Step advances every particle one frame toward its goal.
func (f *Field) Step(hovered bool) {
	for i := range f.Particles {
		p := &f.Particles[i]
		gx, gy := p.Goal(hovered)

		p.VX = (p.VX + (gx-p.X)*f.spring) * f.damping
		p.VY = (p.VY + (gy-p.Y)*f.spring) * f.damping

		p.X += p.VX
		p.Y += p.VY
	}
}

// MaxDeviation returns the largest distance between a particle and its goal.
func (f *Field) MaxDeviation(hovered bool) float64 {
	var worst float64
	for i := range f.Particles {
		p := &f.Particles[i]
		gx, gy := p.Goal(hovered)
		if d := math.Hypot(gx-p.X, gy-p.Y); d > worst {
			worst = d
		}
	}
	return worst
}

func (f *Field) clone() *Field {
	out := *f
	out.Particles = make([]Particle, len(f.Particles))
	copy(out.Particles, f.Particles)
	return &out
}
