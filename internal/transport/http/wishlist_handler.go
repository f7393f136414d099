package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

type WishlistHandler struct {
	stores *service.Stores
}

func RegisterWishlist(e *echo.Echo, clients *service.ClientService, stores *service.Stores) {
	handler := &WishlistHandler{stores: stores}

	g := e.Group("/api/v1/wishlist", RequireClient(clients))
	g.GET("", handler.list)
	g.GET("/:destination_id", handler.contains)

	// Changing the wishlist needs a logged-in visitor, reading it does not.
	g.POST("", handler.add, RequireSession(stores))
	g.DELETE("/:destination_id", handler.remove, RequireSession(stores))
}

func (h *WishlistHandler) list(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	wishlist := h.stores.Wishlist(clientID)
	ids, err := wishlist.All(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, "could not load wishlist")
	}
	destinations, err := wishlist.Destinations(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, "could not load wishlist")
	}
	return c.JSON(http.StatusOK, WishlistResponse{Wishlist: ids, Destinations: destinations})
}

func (h *WishlistHandler) contains(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	id := strings.TrimSpace(c.Param("destination_id"))
	ok, err := h.stores.Wishlist(clientID).Contains(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, "could not load wishlist")
	}
	return c.JSON(http.StatusOK, util.Envelope{"destination_id": id, "in_wishlist": ok})
}

func (h *WishlistHandler) add(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	var req WishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	id := strings.TrimSpace(req.DestinationID)
	if id == "" {
		return c.JSON(http.StatusBadRequest, util.Error("destination_id is required"))
	}
	if _, ok := h.stores.Catalog().Lookup(id); !ok {
		return writeServiceError(c, service.ErrDestinationNotFound, "")
	}

	wishlist := h.stores.Wishlist(clientID)
	if err := wishlist.Add(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err, "could not update wishlist")
	}
	ids, err := wishlist.All(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, "could not load wishlist")
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"wishlist": ids,
		"message":  "Ditambahkan ke wishlist",
	})
}

func (h *WishlistHandler) remove(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	id := strings.TrimSpace(c.Param("destination_id"))
	wishlist := h.stores.Wishlist(clientID)
	if err := wishlist.Remove(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err, "could not update wishlist")
	}
	ids, err := wishlist.All(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, "could not load wishlist")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"wishlist": ids,
		"message":  "Dihapus dari wishlist",
	})
}
