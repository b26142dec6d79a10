package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sergiotsk/TecFlow/internal/apierror"
	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/service"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar configuración"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) Save(c *gin.Context) {
	var req dto.SaveBusinessSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Save(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) Margins(c *gin.Context) {
	margins, err := h.svc.Margins(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar márgenes"))
		return
	}
	c.JSON(http.StatusOK, dto.MarginSettingsResponse{Margins: margins})
}

func (h *SettingsHandler) UpdateDefaultMargin(c *gin.Context) {
	var req dto.UpdateDefaultMarginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	margins, err := h.svc.UpdateDefaultMargin(c.Request.Context(), req.Value)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarginSettingsResponse{Margins: margins})
}

func (h *SettingsHandler) UpdateSupplierMargin(c *gin.Context) {
	var req dto.UpdateSupplierMarginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	margins, err := h.svc.UpdateSupplierMargin(c.Request.Context(), req.Supplier, req.Value)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarginSettingsResponse{Margins: margins})
}

func (h *SettingsHandler) RemoveSupplierMargin(c *gin.Context) {
	var req dto.SupplierNameRequest
	if !bindAndValidate(c, &req) {
		return
	}
	margins, err := h.svc.RemoveSupplierMargin(c.Request.Context(), req.Supplier)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarginSettingsResponse{Margins: margins})
}

func (h *SettingsHandler) ToggleFreeze(c *gin.Context) {
	var req dto.SupplierNameRequest
	if !bindAndValidate(c, &req) {
		return
	}
	margins, err := h.svc.ToggleFreeze(c.Request.Context(), req.Supplier)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarginSettingsResponse{Margins: margins})
}

func (h *SettingsHandler) DeleteSupplier(c *gin.Context) {
	var req dto.SupplierNameRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.DeleteSupplier(c.Request.Context(), req.Supplier)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
