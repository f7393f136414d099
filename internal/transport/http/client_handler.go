package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

func RegisterClients(e *echo.Echo, clients *service.ClientService) {
	e.POST("/api/v1/clients", func(c echo.Context) error {
		profile, err := clients.Issue()
		if err != nil {
			return writeServiceError(c, err, "could not issue client token")
		}
		return c.JSON(http.StatusCreated, ClientResponse{
			ClientID:  profile.ClientID,
			Token:     profile.Token,
			ExpiresAt: profile.ExpiresAt.UTC(),
		})
	})

	// Lets a web client check a stored token before reusing it.
	e.GET("/api/v1/clients/me", func(c echo.Context) error {
		clientID, _ := CurrentClientID(c)
		return c.JSON(http.StatusOK, util.Data("client_id", clientID))
	}, RequireClient(clients))
}
