package particles

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

// DefaultFrameRate matches a typical display refresh.
const DefaultFrameRate = 60

// FrameSink receives every rendered frame. It runs with the animator locked
// and must not call back into the animator.
type FrameSink func(frame uint64, img *image.RGBA)

// AnimatorOption customizes an Animator.
type AnimatorOption func(*Animator)

// WithFrameRate sets the loop rate. Zero disables the loop; frames then only
// advance through Step.
func WithFrameRate(fps int) AnimatorOption {
	return func(a *Animator) {
		if fps <= 0 {
			a.interval = 0
			return
		}
		a.interval = time.Second / time.Duration(fps)
	}
}

// WithFrameSink registers a callback for rendered frames.
func WithFrameSink(sink FrameSink) AnimatorOption {
	return func(a *Animator) { a.sink = sink }
}

// WithColor sets the particle fill color.
func WithColor(c color.Color) AnimatorOption {
	return func(a *Animator) { a.color = c }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) AnimatorOption {
	return func(a *Animator) { a.log = log }
}

// Animator owns one particle field, its drawing surface and the frame loop
// driving it. Pointer input arrives through the animator's own bounds.
type Animator struct {
	opts     Options
	interval time.Duration
	sink     FrameSink
	color    color.Color
	log      *slog.Logger

	// lifecycle serializes Mount, SetText, Resize and Unmount so a
	// regeneration never installs a loop behind a concurrent teardown.
	lifecycle sync.Mutex

	mu      sync.Mutex
	text    string
	width   int
	height  int
	mounted bool
	hovered bool
	frame   uint64
	field   *Field
	canvas  *image.RGBA
	loop    *Loop
}

// NewAnimator validates opts and returns an unmounted animator.
func NewAnimator(opts Options, aopts ...AnimatorOption) (*Animator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	a := &Animator{
		opts:     opts.withDefaults(),
		interval: time.Second / DefaultFrameRate,
		color:    color.Black,
		log:      slog.Default(),
	}
	for _, o := range aopts {
		o(a)
	}
	a.log = a.log.With(logger.Scope("particles.animator"))

	return a, nil
}

// Mount samples text onto a width x height surface and starts the frame
// loop. A zero-sized surface mounts with no particles and no loop.
func (a *Animator) Mount(ctx context.Context, text string, width, height int) error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	a.mu.Lock()
	a.text = text
	a.width = width
	a.height = height
	a.mounted = true
	a.mu.Unlock()

	return a.regenerate(ctx)
}

// SetText replaces the text and regenerates the whole particle set.
func (a *Animator) SetText(ctx context.Context, text string) error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	a.mu.Lock()
	if !a.mounted || a.text == text {
		a.text = text
		a.mu.Unlock()
		return nil
	}
	a.text = text
	a.mu.Unlock()

	return a.regenerate(ctx)
}

// Resize changes the surface and regenerates the whole particle set.
func (a *Animator) Resize(ctx context.Context, width, height int) error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	a.mu.Lock()
	if !a.mounted || (a.width == width && a.height == height) {
		a.width, a.height = width, height
		a.mu.Unlock()
		return nil
	}
	a.width, a.height = width, height
	a.mu.Unlock()

	return a.regenerate(ctx)
}

// Unmount stops the frame loop and discards the particle set.
func (a *Animator) Unmount(ctx context.Context) error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	if err := a.stopLoop(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.mounted = false
	a.hovered = false
	a.field = nil
	a.canvas = nil
	return nil
}

func (a *Animator) regenerate(ctx context.Context) error {
	if err := a.stopLoop(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	text, width, height := a.text, a.width, a.height
	a.mu.Unlock()

	field, err := Sample(text, width, height, a.opts)
	if err != nil {
		return fmt.Errorf("sample %q: %w", text, err)
	}

	a.mu.Lock()
	a.field = field
	a.canvas = nil
	a.frame = 0
	if field.Width > 0 && field.Height > 0 {
		a.canvas = image.NewRGBA(image.Rect(0, 0, field.Width, field.Height))
	}
	startLoop := a.canvas != nil && a.interval > 0
	if startLoop {
		a.loop = NewLoop(a.interval, func(uint64) { a.Step() }, a.log)
	}
	loop := a.loop
	a.mu.Unlock()

	a.log.Debug("particle field generated",
		slog.String("text", text),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("particles", field.Len()))

	if !startLoop {
		return nil
	}
	return loop.Start(ctx)
}

func (a *Animator) stopLoop(ctx context.Context) error {
	a.mu.Lock()
	loop := a.loop
	a.loop = nil
	a.mu.Unlock()

	if loop == nil {
		return nil
	}
	return loop.Stop(ctx)
}

// PointerEnter marks the surface hovered; particles head for their targets.
func (a *Animator) PointerEnter() {
	a.setHovered(true)
}

// PointerLeave clears hover; particles head back to their origins.
func (a *Animator) PointerLeave() {
	a.setHovered(false)
}

// PointerMove derives hover from a pointer position in surface coordinates.
func (a *Animator) PointerMove(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hovered = x >= 0 && y >= 0 && x < float64(a.width) && y < float64(a.height)
}

func (a *Animator) setHovered(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hovered = v
}

// Hovered reports the current hover state.
func (a *Animator) Hovered() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hovered
}

// Mounted reports whether the animator is mounted.
func (a *Animator) Mounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mounted
}

// Running reports whether the frame loop is ticking.
func (a *Animator) Running() bool {
	a.mu.Lock()
	loop := a.loop
	a.mu.Unlock()
	return loop != nil && loop.Running()
}

// Step advances the field one frame, renders it and hands it to the sink.
// It returns the frame number, or zero when nothing is mounted.
func (a *Animator) Step() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.field == nil || a.canvas == nil {
		return 0
	}

	a.field.Step(a.hovered)
	Render(a.canvas, a.field.Particles, a.color)
	a.frame++

	if a.sink != nil {
		a.sink(a.frame, a.canvas)
	}
	return a.frame
}

// Snapshot returns a copy of the current particle set.
func (a *Animator) Snapshot() []Particle {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.field == nil {
		return nil
	}
	return a.field.clone().Particles
}

// Field returns a copy of the current field, or nil when unmounted.
func (a *Animator) Field() *Field {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.field == nil {
		return nil
	}
	return a.field.clone()
}

// Frame returns a copy of the last rendered surface, or nil.
func (a *Animator) Frame() *image.RGBA {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.canvas == nil {
		return nil
	}
	out := image.NewRGBA(a.canvas.Rect)
	copy(out.Pix, a.canvas.Pix)
	return out
}
