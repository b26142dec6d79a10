package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sergiotsk/TecFlow/internal/apierror"
	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/service"
)

type DocumentsHandler struct{ svc service.DocumentService }

func NewDocumentsHandler(svc service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{svc: svc}
}

func (h *DocumentsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar documentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DocumentsHandler) SaveQuote(c *gin.Context) {
	var req dto.SaveQuoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveQuote(c.Request.Context(), req.Quote)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DocumentsHandler) SaveReport(c *gin.Context) {
	var req dto.SaveReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveReport(c.Request.Context(), req.Report)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DocumentsHandler) DeleteQuote(c *gin.Context) {
	if err := h.svc.DeleteQuote(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DocumentsHandler) DeleteReport(c *gin.Context) {
	if err := h.svc.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DocumentsHandler) ExportQuotePDF(c *gin.Context) {
	path, err := h.svc.ExportQuotePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExportPDFResponse{Path: path})
}

func (h *DocumentsHandler) ExportReportPDF(c *gin.Context) {
	path, err := h.svc.ExportReportPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExportPDFResponse{Path: path})
}
