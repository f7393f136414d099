package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

// writeServiceError maps service sentinels to status codes. Validation
// errors carry their detail to the client; anything unknown becomes a 500
// with the fallback message.
func writeServiceError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyUsed):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrInvalidClientToken):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	case errors.Is(err, service.ErrAccountValidation),
		errors.Is(err, service.ErrWishlistValidation),
		errors.Is(err, service.ErrReviewValidation),
		errors.Is(err, service.ErrDestinationValidation),
		errors.Is(err, service.ErrImageValidation),
		errors.Is(err, service.ErrPreferenceValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrUploadsDisabled):
		return c.JSON(http.StatusServiceUnavailable, util.Error(err.Error()))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return c.JSON(http.StatusGatewayTimeout, util.Error("request timed out"))
	default:
		c.Set(handlerErrorKey, err.Error())
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}
