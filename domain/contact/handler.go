package contact

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
)

const successMessage = "Thanks! We will get back to you within one business day."

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.With(logger.Scope("contact.handler")),
	}
}

// Submit handles POST /api/contact
func (h *Handler) Submit(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		metrics.FormSubmissions.WithLabelValues("contact", metrics.OutcomeInvalid).Inc()
		return apperror.NewBadRequest("Invalid request body")
	}

	// Bots fill every field. Pretend it worked and drop it.
	if req.Website != "" {
		metrics.FormSubmissions.WithLabelValues("contact", metrics.OutcomeInvalid).Inc()
		h.log.Info("honeypot triggered", slog.String("remote_ip", c.RealIP()))
		return c.JSON(http.StatusCreated, Response{ID: h.svc.newID(), Message: successMessage})
	}

	sub, err := h.svc.Validate(req)
	if err != nil {
		metrics.FormSubmissions.WithLabelValues("contact", metrics.OutcomeInvalid).Inc()
		return err
	}

	meta := Meta{RemoteIP: c.RealIP(), UserAgent: c.Request().UserAgent()}
	if err := h.svc.Submit(c.Request().Context(), sub, meta); err != nil {
		metrics.FormSubmissions.WithLabelValues("contact", metrics.OutcomeError).Inc()
		h.log.Error("contact submission failed",
			slog.String("email", sub.Email),
			slog.Bool("not_delivered", errors.Is(err, ErrNotDelivered)),
			logger.Error(err))
		return apperror.ErrUpstream.
			WithMessage("We could not send your message right now. Please email us directly.").
			WithInternal(err)
	}

	metrics.FormSubmissions.WithLabelValues("contact", metrics.OutcomeOK).Inc()
	return c.JSON(http.StatusCreated, Response{ID: sub.ID, Message: successMessage})
}
