package public

import (
	"errors"

	"github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrItemNotFound, code: response.CodeNotFound, msg: "item not in cart"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrWishlistItemNotFound, code: response.CodeNotFound, msg: "item not in wishlist"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "shipping address incomplete"},
	{target: service.ErrCheckoutStepInvalid, code: response.CodeConflict, msg: "operation not allowed at current checkout step"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "unsupported payment method"},
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrPaymentDeclined, code: response.CodeBadRequest, msg: "payment declined"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
}
