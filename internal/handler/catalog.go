package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sergiotsk/TecFlow/internal/apierror"
	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/importer"
	"github.com/Sergiotsk/TecFlow/internal/infra"
	"github.com/Sergiotsk/TecFlow/internal/service"
)

// maxImportSize caps uploaded price lists at 15 MB.
const maxImportSize = 15 << 20

type CatalogHandler struct {
	svc       service.CatalogService
	extractor infra.Extractor // nil when no AI key is configured
}

func NewCatalogHandler(svc service.CatalogService, extractor infra.Extractor) *CatalogHandler {
	return &CatalogHandler{svc: svc, extractor: extractor}
}

func (h *CatalogHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ToggleFavorite(c *gin.Context) {
	resp, err := h.svc.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Import receives a price list as a multipart upload (field "file") plus
// supplier/category/force form fields. Spreadsheets are parsed locally;
// images and PDFs go through the AI extraction collaborator. Both paths
// converge on the same reconciliation.
func (h *CatalogHandler) Import(c *gin.Context) {
	var meta dto.ImportRequest
	if !bindFormAndValidate(c, &meta) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo a importar"))
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("El archivo supera el tamaño máximo permitido"))
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

	var summary *dto.ImportSummary
	switch ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext {
	case ".xlsx", ".xls":
		grid, err := importer.GridFromXLSX(data)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, apierror.New("No se pudo leer la planilla: "+err.Error()))
			return
		}
		summary, err = h.svc.ImportGrid(c.Request.Context(), grid, meta)
		if err != nil {
			writeServiceError(c, err)
			return
		}
	case ".csv":
		grid, err := importer.GridFromCSV(data)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, apierror.New("No se pudo leer el CSV: "+err.Error()))
			return
		}
		summary, err = h.svc.ImportGrid(c.Request.Context(), grid, meta)
		if err != nil {
			writeServiceError(c, err)
			return
		}
	case ".png", ".jpg", ".jpeg", ".webp", ".pdf":
		if h.extractor == nil {
			c.JSON(http.StatusServiceUnavailable, apierror.New("La extracción por IA no está configurada"))
			return
		}
		items, err := h.extractor.ExtractPriceList(c.Request.Context(), data, mimeForExt(ext))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		summary, err = h.svc.ImportExtracted(c.Request.Context(), items, meta)
		if err != nil {
			writeServiceError(c, err)
			return
		}
	default:
		c.JSON(http.StatusBadRequest, apierror.New("Tipo de archivo no soportado: "+ext))
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *CatalogHandler) Suppliers(c *gin.Context) {
	resp, err := h.svc.Suppliers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar proveedores"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) BuildLineItem(c *gin.Context) {
	var req dto.BuildLineItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.BuildLineItem(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func mimeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
