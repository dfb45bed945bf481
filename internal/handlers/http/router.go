package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/unusualpills/docs" // registra a especificação swagger

	"github.com/rafabene/unusualpills/internal/domain/ports"
	"github.com/rafabene/unusualpills/internal/handlers/dto"
	"github.com/rafabene/unusualpills/internal/handlers/middleware"
	"github.com/rafabene/unusualpills/internal/infrastructure/config"
	"github.com/rafabene/unusualpills/internal/infrastructure/i18n"
	"github.com/rafabene/unusualpills/internal/services"
)

// RouterDeps reúne tudo que o roteador precisa, construído explicitamente no main
type RouterDeps struct {
	Config          *config.Config
	Logger          ports.Logger
	I18n            *i18n.Service
	Templates       *template.Template
	Static          fs.FS
	SignupService   *services.SignupService
	CheckoutService *services.CheckoutService
	Metrics         http.Handler
	HealthCheck     func(context.Context) error
}

// NewRouter monta o engine Gin com middlewares e rotas do site
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.SetHTMLTemplate(deps.Templates)

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		gin.Recovery(),
		middleware.NewI18nMiddleware(deps.I18n).DetectLanguage(),
	)

	router.NoRoute(func(c *gin.Context) {
		dto.WriteProblem(c, dto.NotFoundProblemI18n(c, "Page"))
	})
	router.NoMethod(func(c *gin.Context) {
		dto.WriteProblem(c, dto.MethodNotAllowedProblemI18n(c))
	})

	pages := NewPageHandler()
	signup := NewSignupHandler(deps.SignupService)
	checkout := NewCheckoutHandler(deps.CheckoutService)
	health := NewHealthHandler(cfg.Env, deps.HealthCheck)

	// Páginas
	router.GET("/", pages.Page("index.html", "page.home.title"))
	router.GET("/claw", pages.Page("claw.html", "page.claw.title"))
	router.GET("/merch", pages.Page("merch.html", "page.merch.title"))
	router.GET(thanksPath, pages.Thanks)

	// Formulário da camiseta grátis
	router.GET(signupPath, signup.Form)
	router.POST(signupPath, signup.Submit)

	if deps.Static != nil {
		router.StaticFS("/static", http.FS(deps.Static))
	}

	// API
	api := router.Group("/api")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	{
		api.POST("/checkout", checkout.CreateCheckout)
		api.OPTIONS("/checkout", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	// Operacional
	router.GET("/health", health.Health)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}
	if !cfg.IsProduction() {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return router
}
