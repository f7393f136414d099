package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelWisata_BackEnd/internal/catalog"
	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

// Operating hours in the catalog are local to Indonesia's western zone.
var wib = time.FixedZone("WIB", 7*60*60)

type DestinationHandler struct {
	destinations *service.DestinationService
	weather      *service.WeatherService
	now          func() time.Time
}

func RegisterDestinations(e *echo.Echo, destinations *service.DestinationService, weather *service.WeatherService) {
	handler := &DestinationHandler{destinations: destinations, weather: weather, now: time.Now}

	public := e.Group("/api/v1")
	public.GET("/destinations", handler.list)
	public.GET("/destinations/:id", handler.get)
	public.GET("/destinations/:id/weather", handler.weatherFor)
	public.GET("/categories", handler.categories)
	public.GET("/geocode", handler.geocode)
}

func (h *DestinationHandler) list(c echo.Context) error {
	filter := parseDestinationFilter(c)
	items := h.destinations.List(filter)
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": items,
		"meta": util.Envelope{
			"count":    len(items),
			"category": filter.Category,
			"query":    filter.Search,
		},
	})
}

func (h *DestinationHandler) get(c echo.Context) error {
	dest, err := h.lookup(c)
	if err != nil {
		return writeServiceError(c, err, "could not load destination")
	}
	now := h.now().In(wib)
	return c.JSON(http.StatusOK, DestinationDetailResponse{
		Destination:  dest,
		MapsEmbedURL: dest.Coordinates.MapsEmbedURL(),
		Is24Hours:    dest.Hours.Is24Hours(),
		OpenNow:      dest.Hours.OpenAt(now),
		Today:        dest.Hours.Today(now),
	})
}

func (h *DestinationHandler) weatherFor(c echo.Context) error {
	dest, err := h.lookup(c)
	if err != nil {
		return writeServiceError(c, err, "could not load destination")
	}
	weather, err := h.weather.Lookup(c.Request().Context(), dest.Location)
	if err != nil {
		return writeServiceError(c, err, "could not load weather")
	}
	return c.JSON(http.StatusOK, util.Data("weather", weather))
}

func (h *DestinationHandler) categories(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("categories", h.destinations.Categories()))
}

func (h *DestinationHandler) geocode(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, util.Error("query is required"))
	}
	return c.JSON(http.StatusOK, util.Data("result", catalog.Geocode(query)))
}

func (h *DestinationHandler) lookup(c echo.Context) (domain.Destination, error) {
	id, err := parseDestinationID(c.Param("id"))
	if err != nil {
		return domain.Destination{}, service.ErrDestinationNotFound
	}
	return h.destinations.Get(id)
}

func parseDestinationFilter(c echo.Context) domain.DestinationFilter {
	search := c.QueryParam("query")
	if search == "" {
		search = c.QueryParam("search")
	}
	category := strings.TrimSpace(c.QueryParam("category"))
	if isAllCategories(category) {
		category = ""
	}
	return domain.DestinationFilter{Category: category, Search: strings.TrimSpace(search)}
}

// The web client's "show all" chip is labelled Semua.
func isAllCategories(category string) bool {
	return strings.EqualFold(category, "all") || strings.EqualFold(category, "semua")
}

func parseDestinationID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
