package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

const (
	contextClientKey  = "client_id"
	contextSessionKey = "session"
)

// RequireClient resolves the bearer client token; every stateful route
// needs one because it selects the local storage namespace.
func RequireClient(clients *service.ClientService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("missing authorization header"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid authorization header"))
			}
			clientID, err := clients.Resolve(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
			}
			c.Set(contextClientKey, clientID)
			return next(c)
		}
	}
}

// RequireSession must run after RequireClient.
func RequireSession(stores *service.Stores) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID, ok := CurrentClientID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, util.Error("client token required"))
			}
			session, err := stores.Session(clientID).Current(c.Request().Context())
			if err != nil {
				return c.JSON(http.StatusInternalServerError, util.Error("could not load session"))
			}
			if session == nil {
				return c.JSON(http.StatusUnauthorized, util.Error(service.ErrNotAuthenticated.Error()))
			}
			c.Set(contextSessionKey, session)
			return next(c)
		}
	}
}

// RequireAdmin must run after RequireSession.
func RequireAdmin(stores *service.Stores) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := CurrentSession(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
			}
			clientID, _ := CurrentClientID(c)
			if !stores.Session(clientID).IsAdmin(session) {
				return c.JSON(http.StatusForbidden, util.Error("admin privileges required"))
			}
			return next(c)
		}
	}
}

func CurrentClientID(c echo.Context) (string, bool) {
	id, ok := c.Get(contextClientKey).(string)
	return id, ok && id != ""
}

func CurrentSession(c echo.Context) (*domain.Session, bool) {
	session, ok := c.Get(contextSessionKey).(*domain.Session)
	return session, ok && session != nil
}
