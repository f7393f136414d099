package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

type ReviewHandler struct {
	stores *service.Stores
}

func RegisterReviews(e *echo.Echo, clients *service.ClientService, stores *service.Stores) {
	handler := &ReviewHandler{stores: stores}

	g := e.Group("/api/v1/destinations/:id/reviews", RequireClient(clients))
	g.GET("", handler.list)
	g.POST("", handler.submit)
}

func (h *ReviewHandler) list(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	reviews := h.stores.Reviews(clientID)
	items, err := reviews.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err, "could not load reviews")
	}
	summary, err := reviews.Summary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err, "could not load reviews")
	}
	return c.JSON(http.StatusOK, ReviewListResponse{Reviews: items, Summary: summary})
}

// submit passes a nil session through so the store reports the missing
// login the same way as every other validation failure.
func (h *ReviewHandler) submit(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	session, err := h.stores.Session(clientID).Current(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, "could not load session")
	}
	if session != nil {
		c.Set(contextSessionKey, session)
	}

	review, err := h.stores.Reviews(clientID).Submit(c.Request().Context(), c.Param("id"), req.Rating, req.Comment, session)
	if err != nil {
		return writeServiceError(c, err, "could not submit review")
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"review":  review,
		"message": "Review berhasil dikirim!",
	})
}
