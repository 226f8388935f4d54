package indexing

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

// Request is the POST /api/indexing body
type Request struct {
	URLs []string `json:"urls"`
}

var errIndexingDisabled = apperror.New(http.StatusServiceUnavailable, "indexing_disabled", "No indexing provider is configured")

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.With(logger.Scope("indexing.handler")),
	}
}

// Submit handles POST /api/indexing
func (h *Handler) Submit(c echo.Context) error {
	var req Request
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return apperror.NewBadRequest("Invalid request body")
		}
	}

	urls, err := h.svc.ResolveURLs(req.URLs)
	if err != nil {
		if errors.Is(err, ErrForeignURL) {
			return apperror.NewBadRequest(err.Error())
		}
		return apperror.NewInternal("Could not resolve URLs", err)
	}

	report, err := h.svc.Submit(c.Request().Context(), TriggerAPI, urls)
	switch {
	case errors.Is(err, ErrNoProviders):
		return errIndexingDisabled
	case err != nil:
		h.log.Error("indexing submission failed",
			slog.Int("urls", len(urls)),
			logger.Error(err))
		return apperror.ErrUpstream.
			WithMessage("One or more indexing submissions failed").
			WithDetails(map[string]any{"failed": report.Failed, "results": report.Results}).
			WithInternal(err)
	}

	return c.JSON(http.StatusOK, report)
}

// RequireToken checks the Authorization: Bearer header against token
func RequireToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return apperror.ErrUnauthorized
			}
			return next(c)
		}
	}
}
