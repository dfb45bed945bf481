package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	domainerrors "github.com/rafabene/unusualpills/internal/domain/errors"
)

// ProblemResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ProblemResponse struct {
	*problems.Problem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewProblemResponseI18n cria uma resposta de erro usando i18n
func NewProblemResponseI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]interface{}) ProblemResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewDetailedProblem(status, T(c, detailKey, params...))
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey, params...)
	problem.Instance = c.Request.URL.Path

	return ProblemResponse{Problem: problem}
}

// WriteProblem escreve a resposta com o media type application/problem+json
func WriteProblem(c *gin.Context, response ProblemResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

// Helper functions para respostas de erro comuns com i18n

// ValidationProblemI18n cria uma resposta 400 com o detalhe traduzido
func ValidationProblemI18n(c *gin.Context, detailKey string, params ...map[string]interface{}) ProblemResponse {
	return NewProblemResponseI18n(
		c,
		domainerrors.ProblemTypeValidation,
		"error.validation.title",
		detailKey,
		400,
		params...,
	)
}

// NotFoundProblemI18n cria uma resposta de erro 404
func NotFoundProblemI18n(c *gin.Context, resource string) ProblemResponse {
	return NewProblemResponseI18n(
		c,
		domainerrors.ProblemTypeNotFound,
		"error.not_found.title",
		"error.not_found.detail",
		404,
		map[string]interface{}{"Resource": resource},
	)
}

// MethodNotAllowedProblemI18n cria uma resposta de erro 405
func MethodNotAllowedProblemI18n(c *gin.Context) ProblemResponse {
	return NewProblemResponseI18n(
		c,
		domainerrors.ProblemTypeMethod,
		"error.method.title",
		"error.method.detail",
		405,
		map[string]interface{}{"Method": c.Request.Method},
	)
}

// UnavailableProblemI18n cria uma resposta de erro 503
func UnavailableProblemI18n(c *gin.Context, detailKey string) ProblemResponse {
	return NewProblemResponseI18n(
		c,
		domainerrors.ProblemTypeUnavailable,
		"error.internal.title",
		detailKey,
		503,
	)
}

// BadGatewayProblemI18n cria uma resposta de erro 502
func BadGatewayProblemI18n(c *gin.Context, detailKey string) ProblemResponse {
	return NewProblemResponseI18n(
		c,
		domainerrors.ProblemTypeBadGateway,
		"error.internal.title",
		detailKey,
		502,
	)
}

// InternalProblemI18n cria uma resposta de erro 500
func InternalProblemI18n(c *gin.Context) ProblemResponse {
	return NewProblemResponseI18n(
		c,
		domainerrors.ProblemTypeInternal,
		"error.internal.title",
		"error.internal.detail",
		500,
	)
}
