package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/unusualpills/internal/domain/entities"
	"github.com/rafabene/unusualpills/internal/domain/errors"
	"github.com/rafabene/unusualpills/internal/handlers/dto"
	"github.com/rafabene/unusualpills/internal/services"
)

// CheckoutHandler cria sessões de pagamento para o carrinho
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

// NewCheckoutHandler cria um novo CheckoutHandler
func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateCheckout godoc
// @Summary      Create a checkout session
// @Description  Validates the cart, applies the buy 2 get 2 shirt discount and returns the hosted checkout URL.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateCheckoutRequest  true  "Cart items"
// @Success      200      {object}  dto.CreateCheckoutResponse
// @Failure      400      {object}  dto.ProblemResponse
// @Failure      502      {object}  dto.ProblemResponse
// @Failure      503      {object}  dto.ProblemResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req dto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteProblem(c, dto.ValidationProblemI18n(c, "error.checkout.invalid_body"))
		return
	}

	result, err := h.checkoutService.CreateCheckout(
		c.Request.Context(),
		req.ToInput(c.GetHeader("Origin"), c.Request.Host),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateCheckoutResponse{URL: result.URL})
}

func (h *CheckoutHandler) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var domainErr *errors.DomainError
	switch {
	case errs.As(err, &domainErr) && services.IsCheckoutValidationError(err):
		dto.WriteProblem(c, dto.ValidationProblemI18n(c, domainErr.Err.Error(), domainErr.Params))
	case errs.Is(err, errors.ErrEmptyCart):
		dto.WriteProblem(c, dto.ValidationProblemI18n(c, errors.ErrEmptyCart.Error()))
	case errs.Is(err, errors.ErrTooManyItems):
		dto.WriteProblem(c, dto.ValidationProblemI18n(c, errors.ErrTooManyItems.Error(), map[string]interface{}{"Max": entities.MaxLineItems}))
	case errs.Is(err, errors.ErrCheckoutUnavailable):
		dto.WriteProblem(c, dto.UnavailableProblemI18n(c, errors.ErrCheckoutUnavailable.Error()))
	case errs.Is(err, errors.ErrPaymentProvider):
		dto.WriteProblem(c, dto.BadGatewayProblemI18n(c, errors.ErrPaymentProvider.Error()))
	default:
		dto.WriteProblem(c, dto.InternalProblemI18n(c))
	}
}
