package subscribe

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/validate"
)

// Request is the POST /api/subscribe body
type Request struct {
	Email string `json:"email" form:"email"`
}

// Response is returned on success
type Response struct {
	Message string `json:"message"`
}

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.With(logger.Scope("subscribe.handler")),
	}
}

// Subscribe handles POST /api/subscribe
func (h *Handler) Subscribe(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		metrics.FormSubmissions.WithLabelValues("subscribe", metrics.OutcomeInvalid).Inc()
		return apperror.NewBadRequest("Invalid request body")
	}

	address, err := validate.Email(req.Email)
	if err != nil {
		metrics.FormSubmissions.WithLabelValues("subscribe", metrics.OutcomeInvalid).Inc()
		return apperror.NewBadRequest("Please enter a valid email address")
	}

	if err := h.svc.Subscribe(c.Request().Context(), address, c.RealIP()); err != nil {
		metrics.FormSubmissions.WithLabelValues("subscribe", metrics.OutcomeError).Inc()
		h.log.Error("subscription failed",
			slog.String("email", address),
			logger.Error(err))
		return apperror.ErrUpstream.WithMessage("We could not subscribe you right now. Please try again later.").WithInternal(err)
	}

	metrics.FormSubmissions.WithLabelValues("subscribe", metrics.OutcomeOK).Inc()
	return c.JSON(http.StatusOK, Response{Message: "Thanks for subscribing! Check your inbox."})
}
