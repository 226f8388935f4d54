package particles

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Render clears dst and draws every particle as a filled square at its
// rounded position.
func Render(dst *image.RGBA, particles []Particle, c color.Color) {
	clearSurface(dst)
	src := image.NewUniform(c)
	for i := range particles {
		p := &particles[i]
		fillSquare(dst, src, p.X, p.Y, p.Size)
	}
}

// RenderBlocks clears dst and draws every block.
func RenderBlocks(dst *image.RGBA, blocks []Block, c color.Color) {
	clearSurface(dst)
	src := image.NewUniform(c)
	for i := range blocks {
		b := &blocks[i]
		fillSquare(dst, src, b.X, b.Y, b.Size)
	}
}

func clearSurface(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func fillSquare(dst *image.RGBA, src image.Image, x, y float64, size int) {
	px := int(math.Round(x))
	py := int(math.Round(y))
	r := image.Rect(px, py, px+size, py+size).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, src, image.Point{}, draw.Src)
}
