package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/njprem/TravelWisata_BackEnd/docs"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

// RegisterSwagger registers the Swagger UI handler under /swagger.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		doc, err := docs.JSON()
		if err != nil {
			c.Logger().Errorf("convert swagger document: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to parse swagger document"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
