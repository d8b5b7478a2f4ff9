package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/sukalov/shitsu/internal/cart"
)

type stubCartService struct {
	lastToken string
	addedID   uuid.UUID
	addedQty  int
}

func (s *stubCartService) Get(ctx context.Context, token string) (*cart.CartDTO, error) {
	s.lastToken = token
	return &cart.CartDTO{Token: token, Lines: []cart.Line{}}, nil
}

func (s *stubCartService) AddItem(ctx context.Context, token string, productID uuid.UUID, quantity int) (*cart.CartDTO, error) {
	s.lastToken = token
	s.addedID = productID
	s.addedQty = quantity
	return &cart.CartDTO{Token: token, Lines: []cart.Line{}}, nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*cart.CartDTO, error) {
	panic("unimplemented")
}

func (s *stubCartService) SetQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (*cart.CartDTO, error) {
	panic("unimplemented")
}

func (s *stubCartService) Clear(ctx context.Context, token string) (*cart.CartDTO, error) {
	s.lastToken = token
	return &cart.CartDTO{Token: token, Lines: []cart.Line{}}, nil
}

func (s *stubCartService) SetOpen(ctx context.Context, token string, open bool) (*cart.CartDTO, error) {
	panic("unimplemented")
}

func TestGetCartIssuesTokenWhenMissing(t *testing.T) {
	logg := testLogger()
	stub := &stubCartService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	GetCart(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	issued := rec.Header().Get(CartTokenHeader)
	if issued == "" {
		t.Fatalf("expected a cart token to be issued")
	}
	if _, err := uuid.Parse(issued); err != nil {
		t.Fatalf("expected a uuid token, got %q", issued)
	}
	if stub.lastToken != issued {
		t.Fatalf("expected the issued token to reach the service")
	}
}

func TestGetCartReusesCallerToken(t *testing.T) {
	logg := testLogger()
	stub := &stubCartService{}
	token := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(CartTokenHeader, token)
	rec := httptest.NewRecorder()
	GetCart(stub, logg).ServeHTTP(rec, req)

	if got := rec.Header().Get(CartTokenHeader); got != token {
		t.Fatalf("expected token %q to be echoed, got %q", token, got)
	}
	if stub.lastToken != token {
		t.Fatalf("expected caller token to reach the service")
	}
}

func TestAddCartItem(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubCartService{}
		body := `{"product_id":"` + productID.String() + `","quantity":2}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		rec := httptest.NewRecorder()
		AddCartItem(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.addedID != productID || stub.addedQty != 2 {
			t.Fatalf("expected AddItem to receive the payload")
		}
	})

	t.Run("bad product id", func(t *testing.T) {
		body := `{"product_id":"nope"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		rec := httptest.NewRecorder()
		AddCartItem(&stubCartService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad product id, got %d", rec.Code)
		}
	})
}
