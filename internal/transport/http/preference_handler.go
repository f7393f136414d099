package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

type PreferenceHandler struct {
	stores *service.Stores
}

func RegisterPreferences(e *echo.Echo, clients *service.ClientService, stores *service.Stores) {
	handler := &PreferenceHandler{stores: stores}

	g := e.Group("/api/v1/preferences", RequireClient(clients))
	g.GET("/locale", handler.locale)
	g.PUT("/locale", handler.setLocale)
}

func (h *PreferenceHandler) locale(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	locale, err := h.stores.Preferences(clientID).Locale(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, "could not load preferences")
	}
	return c.JSON(http.StatusOK, LocaleResponse{Locale: locale})
}

func (h *PreferenceHandler) setLocale(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	var req LocaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	locale, err := h.stores.Preferences(clientID).SetLocale(c.Request().Context(), req.Locale)
	if err != nil {
		return writeServiceError(c, err, "could not save preferences")
	}
	return c.JSON(http.StatusOK, LocaleResponse{Locale: locale})
}
