package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sukalov/shitsu/api/responses"
	"github.com/sukalov/shitsu/api/validators"
	"github.com/sukalov/shitsu/internal/cart"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
	"github.com/sukalov/shitsu/pkg/logger"
)

// CartTokenHeader carries the opaque cart token. Responses echo the
// token back so first-time clients learn theirs.
const CartTokenHeader = "X-Cart-Token"

// GetCart returns the cart for the caller's token. Callers without a
// token get a fresh empty cart plus its token.
func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)

		dto, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(CartTokenHeader, token)
		responses.WriteSuccess(w, dto)
	}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity,omitempty"`
}

// AddCartItem adds a product to the cart, merging duplicate lines.
func AddCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(payload.ProductID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		dto, err := svc.AddItem(r.Context(), token, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(CartTokenHeader, token)
		responses.WriteSuccess(w, dto)
	}
}

// RemoveCartItem drops a product line. Removing an absent line is fine.
func RemoveCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)

		productID, err := uuidParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.RemoveItem(r.Context(), token, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(CartTokenHeader, token)
		responses.WriteSuccess(w, dto)
	}
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetCartQuantity sets a line quantity; zero or less removes the line.
func SetCartQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)

		productID, err := uuidParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SetQuantity(r.Context(), token, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(CartTokenHeader, token)
		responses.WriteSuccess(w, dto)
	}
}

// ClearCart empties the cart while keeping its visibility flag.
func ClearCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)

		dto, err := svc.Clear(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(CartTokenHeader, token)
		responses.WriteSuccess(w, dto)
	}
}

type cartOpenRequest struct {
	IsOpen bool `json:"is_open"`
}

// SetCartOpen toggles the cart drawer visibility flag.
func SetCartOpen(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := cartToken(r)

		var payload cartOpenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SetOpen(r.Context(), token, payload.IsOpen)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(CartTokenHeader, token)
		responses.WriteSuccess(w, dto)
	}
}

func cartToken(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get(CartTokenHeader))
	if token == "" {
		token = cart.NewToken()
	}
	return token
}
