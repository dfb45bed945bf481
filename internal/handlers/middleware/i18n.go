package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/unusualpills/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
	// LanguageCookie guarda a escolha explícita do visitante
	LanguageCookie = "lang"

	languageCookieMaxAge = 60 * 60 * 24 * 365
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=es (override explícito, persistido em cookie)
// 2. Cookie "lang" de uma escolha anterior
// 3. Accept-Language header (preferência do browser)
// 4. Idioma padrão (fallback)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := ""

		if queryLang := c.Query("lang"); m.i18nService.IsLanguageSupported(queryLang) {
			lang = queryLang
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(LanguageCookie, lang, languageCookieMaxAge, "/", "", false, true)
		}

		if lang == "" {
			if cookieLang, err := c.Cookie(LanguageCookie); err == nil && m.i18nService.IsLanguageSupported(cookieLang) {
				lang = cookieLang
			}
		}

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

// parseAcceptLanguage retorna o primeiro idioma suportado do header, na ordem enviada.
// "es-MX" cai para "es" quando só a base é suportada.
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	for _, part := range strings.Split(acceptLang, ",") {
		tag := strings.TrimSpace(part)
		if idx := strings.Index(tag, ";"); idx != -1 {
			tag = tag[:idx]
		}
		if tag == "" {
			continue
		}

		if m.i18nService.IsLanguageSupported(tag) {
			return tag
		}

		if base, _, found := strings.Cut(tag, "-"); found && m.i18nService.IsLanguageSupported(base) {
			return base
		}
	}

	return ""
}
