package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader é o header usado para propagar o ID da requisição
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey é a chave do ID da requisição no contexto do Gin
	RequestIDContextKey = "request_id"
)

// RequestID reaproveita o X-Request-ID recebido ou gera um novo UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(RequestIDContextKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
