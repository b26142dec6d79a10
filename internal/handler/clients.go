package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sergiotsk/TecFlow/internal/apierror"
	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/service"
)

type ClientsHandler struct{ svc service.ClientService }

func NewClientsHandler(svc service.ClientService) *ClientsHandler {
	return &ClientsHandler{svc: svc}
}

func (h *ClientsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientsHandler) Create(c *gin.Context) {
	var req dto.SaveClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Save(c.Request.Context(), "", req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientsHandler) Update(c *gin.Context) {
	var req dto.SaveClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Save(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportCSV merges a contact list export (field "file") into the address
// book.
func (h *ClientsHandler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo a importar"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}

	summary, err := h.svc.ImportCSV(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("No se pudo importar el CSV: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, summary)
}
