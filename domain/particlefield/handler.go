package particlefield

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/particles"
)

const cacheControl = "public, max-age=300"

// LoadShedder reports whether the host is too busy for expensive renders
type LoadShedder interface {
	Critical() bool
}

type Handler struct {
	svc  *Service
	shed LoadShedder
	log  *slog.Logger
}

// NewHandler creates the handler. shed may be nil.
func NewHandler(svc *Service, shed LoadShedder, log *slog.Logger) *Handler {
	return &Handler{
		svc:  svc,
		shed: shed,
		log:  log.With(logger.Scope("particlefield.handler")),
	}
}

func bindQuery(c echo.Context) (Query, error) {
	var q Query
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return q, apperror.NewBadRequest("Invalid query parameters")
	}
	if errs := Normalize(&q); !errs.Empty() {
		return q, apperror.NewValidation(errs)
	}
	return q, nil
}

// Field handles GET /api/particles
func (h *Handler) Field(c echo.Context) error {
	q, err := bindQuery(c)
	if err != nil {
		return err
	}

	field, err := h.svc.Field(c.Request().Context(), q)
	if err != nil {
		if errors.Is(err, particles.ErrInvalidOptions) {
			return apperror.NewBadRequest(err.Error())
		}
		return apperror.NewInternal("Could not sample text", err)
	}

	c.Response().Header().Set("Cache-Control", cacheControl)
	return c.JSON(http.StatusOK, field)
}

// Preview handles GET /api/particles/preview.gif
func (h *Handler) Preview(c echo.Context) error {
	if h.shed != nil && h.shed.Critical() {
		c.Response().Header().Set("Retry-After", "30")
		return apperror.New(http.StatusServiceUnavailable, "busy", "Preview rendering is paused while the server is under heavy load")
	}

	q, err := bindQuery(c)
	if err != nil {
		return err
	}

	errs := map[string]string{}
	if q.Width > maxPreviewWidth {
		errs["width"] = fmt.Sprintf("preview width must be at most %d", maxPreviewWidth)
	}
	if q.Height > maxPreviewHeight {
		errs["height"] = fmt.Sprintf("preview height must be at most %d", maxPreviewHeight)
	}
	if q.Frames < 0 || q.Frames > maxPreviewFrames {
		errs["frames"] = fmt.Sprintf("frames must be between 0 and %d", maxPreviewFrames)
	}
	if len(errs) > 0 {
		return apperror.NewValidation(errs)
	}

	var buf bytes.Buffer
	if err := h.svc.Preview(c.Request().Context(), &buf, q); err != nil {
		switch {
		case errors.Is(err, particles.ErrEmptyPreview):
			return apperror.NewValidation(map[string]string{"text": "text produced no particles at this size"})
		case errors.Is(err, particles.ErrInvalidOptions):
			return apperror.NewBadRequest(err.Error())
		}
		h.log.Error("preview failed", slog.String("text", q.Text), logger.Error(err))
		return apperror.NewInternal("Could not render preview", err)
	}

	c.Response().Header().Set("Cache-Control", cacheControl)
	return c.Blob(http.StatusOK, "image/gif", buf.Bytes())
}
