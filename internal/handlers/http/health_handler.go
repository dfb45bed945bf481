package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler expõe o estado da aplicação e do banco
type HealthHandler struct {
	env   string
	check func(context.Context) error
}

// NewHealthHandler cria um HealthHandler; check pode ser nil
func NewHealthHandler(env string, check func(context.Context) error) *HealthHandler {
	return &HealthHandler{env: env, check: check}
}

// Health godoc
// @Summary  Health check
// @Tags     ops
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  503  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.check != nil {
		if err := h.check(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"env":    h.env,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"env":    h.env,
	})
}
