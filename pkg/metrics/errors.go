package metrics

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
)

func asHTTPError(err error, target **echo.HTTPError) bool {
	if errors.As(err, target) {
		return true
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		*target = echo.NewHTTPError(appErr.HTTPStatus)
		return true
	}
	return false
}
