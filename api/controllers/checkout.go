package controllers

import (
	"net/http"
	"strings"

	"github.com/sukalov/shitsu/api/responses"
	"github.com/sukalov/shitsu/api/validators"
	"github.com/sukalov/shitsu/internal/checkout"
	"github.com/sukalov/shitsu/pkg/enums"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
	"github.com/sukalov/shitsu/pkg/logger"
)

type composeCheckoutRequest struct {
	DeliveryMethod string `json:"delivery_method" validate:"required"`
	Address        string `json:"address" validate:"required"`
}

// ComposeCheckout renders the Telegram hand-off for the caller's cart.
func ComposeCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get(CartTokenHeader))
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token required"))
			return
		}

		var payload composeCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParseDeliveryMethod(strings.TrimSpace(payload.DeliveryMethod))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery method"))
			return
		}

		result, err := svc.ComposeFromCart(r.Context(), token, checkout.OrderInput{
			DeliveryMethod: method,
			Address:        payload.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type composeCustomRequest struct {
	Brief string `json:"brief" validate:"required"`
}

// ComposeCustomOrder renders the commission request hand-off.
func ComposeCustomOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload composeCustomRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.ComposeCustom(r.Context(), payload.Brief))
	}
}
