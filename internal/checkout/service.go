package checkout

import (
	"context"
	"fmt"

	"github.com/sukalov/shitsu/internal/cart"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
)

// Service composes checkout hand-offs, either from explicit lines or
// straight from a stored cart.
type Service interface {
	ComposeOrder(ctx context.Context, input OrderInput) ComposeResult
	ComposeFromCart(ctx context.Context, token string, input OrderInput) (ComposeResult, error)
	ComposeCustom(ctx context.Context, brief string) ComposeResult
}

type cartReader interface {
	Get(ctx context.Context, token string) (*cart.CartDTO, error)
}

type service struct {
	composer *Composer
	carts    cartReader
}

// NewService constructs a checkout service instance.
func NewService(composer *Composer, carts cartReader) (Service, error) {
	if composer == nil {
		return nil, fmt.Errorf("composer required")
	}
	return &service{composer: composer, carts: carts}, nil
}

func (s *service) ComposeOrder(ctx context.Context, input OrderInput) ComposeResult {
	return s.composer.ComposeOrder(input)
}

// ComposeFromCart loads the cart for the token and renders its lines.
func (s *service) ComposeFromCart(ctx context.Context, token string, input OrderInput) (ComposeResult, error) {
	if s.carts == nil {
		return ComposeResult{}, pkgerrors.New(pkgerrors.CodeInternal, "cart reader not configured")
	}
	dto, err := s.carts.Get(ctx, token)
	if err != nil {
		return ComposeResult{}, err
	}

	lines := make([]LineInput, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		lines = append(lines, LineInput{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}
	input.Lines = lines
	return s.composer.ComposeOrder(input), nil
}

func (s *service) ComposeCustom(ctx context.Context, brief string) ComposeResult {
	return s.composer.ComposeCustom(brief)
}
