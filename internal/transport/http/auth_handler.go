package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

type AuthHandler struct {
	stores *service.Stores
}

func RegisterAuth(e *echo.Echo, clients *service.ClientService, stores *service.Stores) {
	handler := &AuthHandler{stores: stores}

	g := e.Group("/api/v1/auth", RequireClient(clients))
	g.POST("/register", handler.register)
	g.POST("/login", handler.login)
	g.POST("/logout", handler.logout)
	g.GET("/session", handler.session)
}

func (h *AuthHandler) register(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := h.stores.Session(clientID).Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		return writeServiceError(c, err, "could not register account")
	}
	return c.JSON(http.StatusCreated, util.Message("Registrasi berhasil! Silakan login."))
}

func (h *AuthHandler) login(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	sessions := h.stores.Session(clientID)
	session, err := sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err, "could not log in")
	}
	c.Set(contextSessionKey, session)
	return c.JSON(http.StatusOK, SessionResponse{Session: session, IsAdmin: sessions.IsAdmin(session)})
}

func (h *AuthHandler) logout(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	if err := h.stores.Session(clientID).Logout(c.Request().Context()); err != nil {
		return writeServiceError(c, err, "could not log out")
	}
	return c.JSON(http.StatusOK, util.Message("logged out"))
}

func (h *AuthHandler) session(c echo.Context) error {
	clientID, _ := CurrentClientID(c)
	sessions := h.stores.Session(clientID)
	session, err := sessions.Current(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, "could not load session")
	}
	if session != nil {
		c.Set(contextSessionKey, session)
	}
	return c.JSON(http.StatusOK, SessionResponse{Session: session, IsAdmin: sessions.IsAdmin(session)})
}
