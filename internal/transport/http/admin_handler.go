package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

type AdminHandler struct {
	editors *service.AdminEditors
	images  *service.ImageService
}

func RegisterAdmin(e *echo.Echo, clients *service.ClientService, stores *service.Stores, editors *service.AdminEditors, images *service.ImageService) {
	handler := &AdminHandler{editors: editors, images: images}

	admin := e.Group("/api/v1/admin", RequireClient(clients), RequireSession(stores), RequireAdmin(stores))
	admin.GET("/destinations", handler.list)
	admin.POST("/destinations", handler.create)
	admin.GET("/destinations/:id", handler.get)
	admin.PUT("/destinations/:id", handler.update)
	admin.DELETE("/destinations/:id", handler.delete)
	admin.GET("/stats", handler.stats)
	admin.POST("/images", handler.uploadImage)
}

func (h *AdminHandler) editor(c echo.Context) *service.AdminEditor {
	clientID, _ := CurrentClientID(c)
	return h.editors.For(clientID)
}

func (h *AdminHandler) list(c echo.Context) error {
	editor := h.editor(c)
	query := strings.TrimSpace(c.QueryParam("query"))
	var items []domain.Destination
	if query == "" {
		items = editor.ListAll()
	} else {
		items = editor.Search(query)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": items,
		"meta":         util.Envelope{"count": len(items), "query": query},
	})
}

func (h *AdminHandler) get(c echo.Context) error {
	id, err := parseDestinationID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	dest, err := h.editor(c).Get(id)
	if err != nil {
		return writeServiceError(c, err, "could not load destination")
	}
	return c.JSON(http.StatusOK, util.Data("destination", dest))
}

func (h *AdminHandler) create(c echo.Context) error {
	var form domain.DestinationForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	dest, err := h.editor(c).Create(form)
	if err != nil {
		return writeServiceError(c, err, "could not create destination")
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"destination": dest,
		"message":     "Destinasi berhasil ditambahkan",
	})
}

func (h *AdminHandler) update(c echo.Context) error {
	id, err := parseDestinationID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	var form domain.DestinationForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	dest, err := h.editor(c).Update(id, form)
	if err != nil {
		return writeServiceError(c, err, "could not update destination")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": dest,
		"message":     "Destinasi berhasil diperbarui",
	})
}

func (h *AdminHandler) delete(c echo.Context) error {
	id, err := parseDestinationID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	if err := h.editor(c).Delete(id); err != nil {
		return writeServiceError(c, err, "could not delete destination")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"id":      id,
		"message": "Destinasi berhasil dihapus",
	})
}

func (h *AdminHandler) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("stats", h.editor(c).Stats()))
}

func (h *AdminHandler) uploadImage(c echo.Context) error {
	if !h.images.Enabled() {
		return writeServiceError(c, service.ErrUploadsDisabled, "")
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read file"))
	}
	defer file.Close()

	clientID, _ := CurrentClientID(c)
	result, err := h.images.UploadGalleryImage(c.Request().Context(), clientID, service.GalleryImageUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return writeServiceError(c, err, "could not upload image")
	}
	return c.JSON(http.StatusCreated, util.Data("image", result))
}
