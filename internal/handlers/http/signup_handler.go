package http

import (
	errs "errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/rafabene/unusualpills/internal/domain/errors"
	"github.com/rafabene/unusualpills/internal/handlers/dto"
	"github.com/rafabene/unusualpills/internal/services"
)

const (
	signupPath = "/free-shirt"
	thanksPath = "/thanks"

	noticeParam  = "notice"
	noticePrefix = "notice."
)

// noticeErrors são os erros de validação devolvidos ao formulário como aviso
var noticeErrors = []error{
	errors.ErrConsentRequired,
	errors.ErrMissingFields,
	errors.ErrInvalidEmail,
}

// SignupHandler lida com o formulário da camiseta grátis
type SignupHandler struct {
	signupService *services.SignupService
}

// NewSignupHandler cria um novo SignupHandler
func NewSignupHandler(signupService *services.SignupService) *SignupHandler {
	return &SignupHandler{
		signupService: signupService,
	}
}

// Form renderiza o formulário com os avisos vindos do redirect
func (h *SignupHandler) Form(c *gin.Context) {
	view := dto.NewPageView(c, "page.free_shirt.title")
	view.Labels = dto.SignupFormLabels(c)
	for _, code := range c.QueryArray(noticeParam) {
		if key, ok := noticeKey(code); ok {
			view.Notices = append(view.Notices, dto.T(c, key))
		}
	}

	c.HTML(http.StatusOK, "free_shirt.html", view)
}

// Submit processa o POST do formulário
func (h *SignupHandler) Submit(c *gin.Context) {
	var form dto.SignupForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	_, err := h.signupService.Submit(c.Request.Context(), form.ToInput(clientIP(c.Request)))
	if err != nil {
		if code, ok := noticeCode(err); ok {
			c.Redirect(http.StatusFound, signupPath+"?"+url.Values{noticeParam: {code}}.Encode())
			return
		}
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	c.Redirect(http.StatusFound, thanksPath)
}

// noticeCode converte um erro de validação no código curto usado na URL
func noticeCode(err error) (string, bool) {
	for _, target := range noticeErrors {
		if errs.Is(err, target) {
			return strings.TrimPrefix(target.Error(), noticePrefix), true
		}
	}
	return "", false
}

// noticeKey aceita apenas códigos conhecidos, nunca texto arbitrário da URL
func noticeKey(code string) (string, bool) {
	for _, target := range noticeErrors {
		if target.Error() == noticePrefix+code {
			return target.Error(), true
		}
	}
	return "", false
}

// clientIP usa o primeiro endereço de X-Forwarded-For, depois o endereço da conexão
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
