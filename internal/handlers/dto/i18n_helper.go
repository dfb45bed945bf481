package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/unusualpills/internal/handlers/middleware"
	"github.com/rafabene/unusualpills/internal/infrastructure/i18n"
)

const fallbackLanguage = "en"

// T traduz a chave no idioma detectado para a requisição.
// Sem serviço i18n no contexto a própria chave é devolvida.
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	service := translator(c)
	if service == nil {
		return key
	}
	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	if lang := c.GetString(middleware.LanguageContextKey); lang != "" {
		return lang
	}
	if service := translator(c); service != nil {
		return service.GetDefaultLanguage()
	}
	return fallbackLanguage
}

func translator(c *gin.Context) *i18n.Service {
	value, ok := c.Get(middleware.I18nServiceContextKey)
	if !ok {
		return nil
	}
	service, _ := value.(*i18n.Service)
	return service
}
