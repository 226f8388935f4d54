package particlefield

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/particles"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/tracing"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/validate"
)

// Service samples particle fields and renders previews
type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	return &Service{log: log.With(logger.Scope("particlefield"))}
}

// Normalize applies defaults to q and returns the per-field problems.
func Normalize(q *Query) validate.Errors {
	errs := validate.Errors{}

	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		errs.Add("text", "text is required")
	} else if utf8.RuneCountInString(q.Text) > maxTextRunes {
		errs.Add("text", fmt.Sprintf("text must be at most %d characters", maxTextRunes))
	}

	if q.Width == 0 {
		q.Width = defaultWidth
	}
	if q.Height == 0 {
		q.Height = defaultHeight
	}
	if q.Width < 0 || q.Width > maxWidth {
		errs.Add("width", fmt.Sprintf("width must be between 0 and %d", maxWidth))
	}
	if q.Height < 0 || q.Height > maxHeight {
		errs.Add("height", fmt.Sprintf("height must be between 0 and %d", maxHeight))
	}

	if q.FontSize == 0 {
		q.FontSize = particles.DefaultFontSize
	}
	if math.IsNaN(q.FontSize) || q.FontSize < minFontSize || q.FontSize > maxFontSize {
		errs.Add("font_size", fmt.Sprintf("font_size must be between %d and %d", minFontSize, maxFontSize))
	}

	if q.ParticleSize == 0 {
		q.ParticleSize = particles.DefaultParticleSize
	}
	if q.ParticleSize < 1 || q.ParticleSize > maxParticleSize {
		errs.Add("particle_size", fmt.Sprintf("particle_size must be between 1 and %d", maxParticleSize))
	}

	if q.Stride == 0 {
		q.Stride = particles.DefaultStride
	}
	if q.Stride < minStride || q.Stride > maxStride {
		errs.Add("stride", fmt.Sprintf("stride must be between %d and %d", minStride, maxStride))
	}

	return errs
}

func (q Query) options() particles.Options {
	return particles.Options{
		FontSize:     q.FontSize,
		ParticleSize: q.ParticleSize,
		Stride:       q.Stride,
		Seed:         q.Seed,
	}
}

// Field samples the particle field for a normalized query
func (s *Service) Field(ctx context.Context, q Query) (FieldDTO, error) {
	_, span := tracing.Start(ctx, "particles.sample")
	defer span.End()

	field, err := particles.Sample(q.Text, q.Width, q.Height, q.options())
	if err != nil {
		tracing.RecordError(span, err)
		return FieldDTO{}, err
	}
	metrics.ParticleFields.Inc()

	s.log.Debug("field sampled",
		slog.String("text", q.Text),
		slog.Int("width", q.Width),
		slog.Int("height", q.Height),
		slog.Int("count", field.Len()))

	return ToFieldDTO(q.Text, field, q.ParticleSize), nil
}

// Preview writes the animated GIF for a normalized query to w
func (s *Service) Preview(ctx context.Context, w io.Writer, q Query) error {
	ctx, span := tracing.Start(ctx, "particles.preview")
	defer span.End()

	err := particles.EncodePreview(ctx, w, q.Text, q.Width, q.Height, q.options(),
		particles.PreviewOptions{Frames: q.Frames, Blocks: q.Blocks})
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}
	metrics.ParticleFields.Inc()
	return nil
}
