package particles

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"

	"golang.org/x/image/draw"
)

// ErrEmptyPreview is returned when the text produces no particles.
var ErrEmptyPreview = errors.New("text produced no particles")

// PreviewOptions controls EncodePreview.
type PreviewOptions struct {
	// Frames is the number of frames rendered.
	Frames int
	// AssembleAt is the frame at which the pointer enters. Before it the
	// cloud rests at its scatter origins.
	AssembleAt int
	// Delay between frames in 100ths of a second.
	Delay int
	// Color of the particles. Background is transparent.
	Color color.Color
	// Blocks renders the falling-block variant instead.
	Blocks bool
}

func (p PreviewOptions) withDefaults() PreviewOptions {
	if p.Frames <= 0 {
		p.Frames = 90
	}
	if p.AssembleAt <= 0 || p.AssembleAt >= p.Frames {
		p.AssembleAt = p.Frames / 4
	}
	if p.Delay <= 0 {
		p.Delay = 3
	}
	if p.Color == nil {
		p.Color = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	}
	return p
}

// EncodePreview renders the animation of text on a width x height surface
// and writes it to w as an animated GIF.
func EncodePreview(ctx context.Context, w io.Writer, text string, width, height int, opts Options, popts PreviewOptions) error {
	popts = popts.withDefaults()
	palette := color.Palette{color.Transparent, popts.Color}

	out := &gif.GIF{}
	appendFrame := func(img *image.RGBA) {
		frame := image.NewPaletted(img.Rect, palette)
		draw.Draw(frame, frame.Rect, img, image.Point{}, draw.Src)
		out.Image = append(out.Image, frame)
		out.Delay = append(out.Delay, popts.Delay)
		out.Disposal = append(out.Disposal, gif.DisposalBackground)
	}

	if popts.Blocks {
		field, err := Sample(text, width, height, opts)
		if err != nil {
			return err
		}
		if field.Len() == 0 {
			return ErrEmptyPreview
		}
		blocks := NewBlocks(field, opts.Seed)
		canvas := image.NewRGBA(image.Rect(0, 0, field.Width, field.Height))
		for i := 0; i < popts.Frames; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			blocks.Step()
			RenderBlocks(canvas, blocks.Blocks, popts.Color)
			appendFrame(canvas)
		}
		return encode(w, out)
	}

	anim, err := NewAnimator(opts,
		WithFrameRate(0),
		WithColor(popts.Color),
		WithFrameSink(func(_ uint64, img *image.RGBA) { appendFrame(img) }),
	)
	if err != nil {
		return err
	}
	if err := anim.Mount(ctx, text, width, height); err != nil {
		return err
	}
	defer func() {
		_ = anim.Unmount(context.WithoutCancel(ctx))
	}()

	if f := anim.Field(); f == nil || f.Len() == 0 {
		return ErrEmptyPreview
	}

	for i := 0; i < popts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == popts.AssembleAt {
			anim.PointerEnter()
		}
		anim.Step()
	}
	return encode(w, out)
}

func encode(w io.Writer, g *gif.GIF) error {
	if err := gif.EncodeAll(w, g); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}
