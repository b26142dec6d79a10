package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sergiotsk/TecFlow/internal/infra"
	"github.com/Sergiotsk/TecFlow/internal/repository"
)

// Health checks that the blob store answers and reports the AI circuit
// breaker state. The breaker state is informational only, an open breaker
// does not fail the check.
func Health(store repository.Store, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeStatus := "connected"
		var probe struct{}
		if err := store.Load(c.Request.Context(), "health_probe", &probe); err != nil && !errors.Is(err, repository.ErrKeyNotFound) {
			storeStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":         status == http.StatusOK,
			"store":      storeStatus,
			"ai_circuit": cb.State().String(),
		})
	}
}
