package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sergiotsk/TecFlow/internal/apierror"
	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/infra"
)

type AIHandler struct {
	polisher infra.Polisher // nil when no AI key is configured
}

func NewAIHandler(polisher infra.Polisher) *AIHandler {
	return &AIHandler{polisher: polisher}
}

func (h *AIHandler) PolishText(c *gin.Context) {
	var req dto.PolishTextRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if h.polisher == nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("El asistente de redacción no está configurado"))
		return
	}
	polished, err := h.polisher.Polish(c.Request.Context(), req.Text, req.Context)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PolishTextResponse{Text: polished})
}
