package particlefield

import (
	"bytes"
	"encoding/json"
	"image/gif"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/particles"
)

type fakeShedder bool

func (f fakeShedder) Critical() bool { return bool(f) }

func newTestEchoWith(shed LoadShedder) *echo.Echo {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(log)
	RegisterRoutes(e, NewHandler(NewService(log), shed, log))
	return e
}

func newTestEcho() *echo.Echo {
	return newTestEchoWith(nil)
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q := Query{Text: "  HI  "}
		errs := Normalize(&q)

		assert.True(t, errs.Empty())
		assert.Equal(t, "HI", q.Text)
		assert.Equal(t, defaultWidth, q.Width)
		assert.Equal(t, defaultHeight, q.Height)
		assert.Equal(t, float64(particles.DefaultFontSize), q.FontSize)
		assert.Equal(t, particles.DefaultParticleSize, q.ParticleSize)
		assert.Equal(t, particles.DefaultStride, q.Stride)
	})

	tests := []struct {
		name  string
		q     Query
		field string
	}{
		{"missing text", Query{}, "text"},
		{"long text", Query{Text: strings.Repeat("W", maxTextRunes+1)}, "text"},
		{"wide", Query{Text: "A", Width: maxWidth + 1}, "width"},
		{"negative height", Query{Text: "A", Height: -1}, "height"},
		{"tiny font", Query{Text: "A", FontSize: 2}, "font_size"},
		{"nan font", Query{Text: "A", FontSize: math.NaN()}, "font_size"},
		{"infinite font", Query{Text: "A", FontSize: math.Inf(1)}, "font_size"},
		{"huge particles", Query{Text: "A", ParticleSize: maxParticleSize + 1}, "particle_size"},
		{"stride too small", Query{Text: "A", Stride: 1}, "stride"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.q
			errs := Normalize(&q)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestHandler_Field(t *testing.T) {
	e := newTestEcho()

	rec := get(e, "/api/particles?text=HI&width=200&height=100&font_size=40&stride=4&seed=7")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cacheControl, rec.Header().Get("Cache-Control"))

	var field FieldDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &field))
	assert.Equal(t, "HI", field.Text)
	assert.Equal(t, 200, field.Width)
	assert.Equal(t, particles.DefaultSpring, field.Spring)
	assert.Equal(t, particles.DefaultDamping, field.Damping)
	require.NotZero(t, field.Count)
	assert.Len(t, field.Particles, field.Count)
	for _, p := range field.Particles {
		assert.True(t, p.TX >= 0 && p.TX < 200, "tx %v", p.TX)
		assert.True(t, p.TY >= 0 && p.TY < 100, "ty %v", p.TY)
		assert.Equal(t, particles.DefaultParticleSize, p.Size)
	}
}

func TestHandler_FieldDeterministicWithSeed(t *testing.T) {
	e := newTestEcho()
	target := "/api/particles?text=OK&width=160&height=80&font_size=32&seed=42"

	first := get(e, target)
	second := get(e, target)

	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestHandler_FieldValidation(t *testing.T) {
	e := newTestEcho()

	rec := get(e, "/api/particles?width=99999")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "text")
	assert.Contains(t, rec.Body.String(), "width")

	rec = get(e, "/api/particles?text=A&width=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, v := range []string{"NaN", "nan", "Inf", "-Inf"} {
		rec = get(e, "/api/particles?text=HI&font_size="+v)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "font_size=%s", v)
		assert.Contains(t, rec.Body.String(), "font_size")
		assert.Empty(t, rec.Header().Get("Cache-Control"))
	}
}

func TestHandler_Preview(t *testing.T) {
	e := newTestEcho()

	rec := get(e, "/api/particles/preview.gif?text=HI&width=120&height=60&font_size=36&frames=12&seed=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get(echo.HeaderContentType))
	img, err := gif.DecodeAll(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Len(t, img.Image, 12)
}

func TestHandler_PreviewLimits(t *testing.T) {
	e := newTestEcho()

	rec := get(e, "/api/particles/preview.gif?text=HI&width=2000&frames=1000")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "frames")
}

func TestHandler_PreviewEmpty(t *testing.T) {
	e := newTestEcho()

	rec := get(e, "/api/particles/preview.gif?text=.&width=40&height=20&font_size=8&stride=32")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandler_PreviewShedsLoad(t *testing.T) {
	e := newTestEchoWith(fakeShedder(true))

	rec := get(e, "/api/particles/preview.gif?text=HI&width=120&height=60")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "busy")

	// the JSON field stays available
	rec = get(e, "/api/particles?text=HI")
	assert.Equal(t, http.StatusOK, rec.Code)
}
