package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/unusualpills/internal/handlers/dto"
)

// PageHandler renderiza as páginas estáticas do site
type PageHandler struct{}

// NewPageHandler cria um novo PageHandler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Page retorna um handler que renderiza o template com o título traduzido
func (h *PageHandler) Page(templateName, titleKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, templateName, dto.NewPageView(c, titleKey))
	}
}

// Thanks renderiza a página de agradecimento
func (h *PageHandler) Thanks(c *gin.Context) {
	view := dto.NewPageView(c, "page.thanks.title")
	view.Message = dto.T(c, "page.thanks.message")
	c.HTML(http.StatusOK, "thanks.html", view)
}
