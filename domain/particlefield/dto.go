package particlefield

import (
	"math"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/particles"
)

// Query limits. They bound the raster size and particle count per request.
const (
	maxTextRunes    = 32
	maxWidth        = 2400
	maxHeight       = 1200
	minFontSize     = 8
	maxFontSize     = 400
	maxParticleSize = 12
	minStride       = 2
	maxStride       = 32

	defaultWidth  = 640
	defaultHeight = 200

	maxPreviewWidth  = 960
	maxPreviewHeight = 480
	maxPreviewFrames = 240
)

// Query is the GET /api/particles query string
type Query struct {
	Text         string  `query:"text"`
	Width        int     `query:"width"`
	Height       int     `query:"height"`
	FontSize     float64 `query:"font_size"`
	ParticleSize int     `query:"particle_size"`
	Stride       int     `query:"stride"`
	Seed         uint64  `query:"seed"`
	Blocks       bool    `query:"blocks"`
	Frames       int     `query:"frames"`
}

// PointDTO is one particle: target, origin and square size
type PointDTO struct {
	TX   float64 `json:"tx"`
	TY   float64 `json:"ty"`
	OX   float64 `json:"ox"`
	OY   float64 `json:"oy"`
	Size int     `json:"size"`
}

// FieldDTO is the particle field sent to the browser animator
type FieldDTO struct {
	Text         string     `json:"text"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Spring       float64    `json:"spring"`
	Damping      float64    `json:"damping"`
	ParticleSize int        `json:"particle_size"`
	Count        int        `json:"count"`
	Particles    []PointDTO `json:"particles"`
}

// ToFieldDTO converts a sampled field. Coordinates are rounded to a tenth of
// a pixel to keep responses small.
func ToFieldDTO(text string, f *particles.Field, particleSize int) FieldDTO {
	out := FieldDTO{
		Text:         text,
		Width:        f.Width,
		Height:       f.Height,
		Spring:       f.Spring(),
		Damping:      f.Damping(),
		ParticleSize: particleSize,
		Count:        f.Len(),
		Particles:    make([]PointDTO, f.Len()),
	}
	for i, p := range f.Particles {
		out.Particles[i] = PointDTO{
			TX:   round1(p.TX),
			TY:   round1(p.TY),
			OX:   round1(p.OX),
			OY:   round1(p.OY),
			Size: p.Size,
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
