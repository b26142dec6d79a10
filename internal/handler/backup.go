package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sergiotsk/TecFlow/internal/apierror"
	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/service"
)

type BackupHandler struct{ svc service.BackupService }

func NewBackupHandler(svc service.BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

func (h *BackupHandler) Export(c *gin.Context) {
	env, err := h.svc.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar el respaldo"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="tecflow_backup.json"`)
	c.JSON(http.StatusOK, env)
}

func (h *BackupHandler) Restore(c *gin.Context) {
	var env dto.BackupEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	if err := h.svc.Restore(c.Request.Context(), env); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
