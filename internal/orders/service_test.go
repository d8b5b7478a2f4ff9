package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukalov/shitsu/pkg/enums"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
)

func newOrdersService(t *testing.T) Service {
	t.Helper()
	db := setupOrdersTestDB(t)
	svc, err := NewService(NewRepository(db), nil)
	require.NoError(t, err)
	return svc
}

func validCreateInput() CreateOrderInput {
	return CreateOrderInput{
		CustomerName:   "Анна",
		Phone:          "+79001234567",
		DeliveryMethod: enums.DeliveryMethodCDEK,
		Items: []CreateOrderItemInput{
			{ProductID: uuid.New(), Name: "Утро", Price: 2500, Quantity: 2},
			{ProductID: uuid.New(), Name: "Открытка", Price: 800, Quantity: 1},
		},
		Total: 5800,
	}
}

func assertErrorCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code())
}

func TestServiceCreateOrder(t *testing.T) {
	svc := newOrdersService(t)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending.String(), created.Status)
	assert.Equal(t, 5800, created.Total)
	require.Len(t, created.Items, 2)

	loaded, err := svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Len(t, loaded.Items, 2)
}

func TestServiceCreateOrderValidation(t *testing.T) {
	svc := newOrdersService(t)
	ctx := context.Background()

	t.Run("empty items", func(t *testing.T) {
		input := validCreateInput()
		input.Items = nil
		input.Total = 0
		_, err := svc.CreateOrder(ctx, input)
		assertErrorCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		input := validCreateInput()
		input.Items[0].Quantity = 0
		_, err := svc.CreateOrder(ctx, input)
		assertErrorCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("negative price", func(t *testing.T) {
		input := validCreateInput()
		input.Items[0].Price = -1
		_, err := svc.CreateOrder(ctx, input)
		assertErrorCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("total mismatch", func(t *testing.T) {
		input := validCreateInput()
		input.Total = 100
		_, err := svc.CreateOrder(ctx, input)
		assertErrorCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("unknown delivery method", func(t *testing.T) {
		input := validCreateInput()
		input.DeliveryMethod = enums.DeliveryMethod("drone")
		_, err := svc.CreateOrder(ctx, input)
		assertErrorCode(t, err, pkgerrors.CodeValidation)
	})
}

func TestServiceGetOrderNotFound(t *testing.T) {
	svc := newOrdersService(t)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	assertErrorCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceUpdateOrderStatus(t *testing.T) {
	svc := newOrdersService(t)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validCreateInput())
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(ctx, created.ID, enums.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed.String(), updated.Status)

	// repeating the current status is a no-op success
	again, err := svc.UpdateOrderStatus(ctx, created.ID, enums.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed.String(), again.Status)
}

func TestServiceUpdateOrderStatusTerminal(t *testing.T) {
	svc := newOrdersService(t)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validCreateInput())
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, created.ID, enums.OrderStatusDelivered)
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, created.ID, enums.OrderStatusShipped)
	assertErrorCode(t, err, pkgerrors.CodeStateConflict)

	// repeating the terminal status still succeeds
	repeated, err := svc.UpdateOrderStatus(ctx, created.ID, enums.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered.String(), repeated.Status)
}

func TestServiceDeleteOrder(t *testing.T) {
	svc := newOrdersService(t)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validCreateInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, created.ID))

	err = svc.DeleteOrder(ctx, created.ID)
	assertErrorCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceCountByStatusIncludesZeroes(t *testing.T) {
	svc := newOrdersService(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, validCreateInput())
	require.NoError(t, err)

	counts, err := svc.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["pending"])
	assert.Equal(t, int64(0), counts["cancelled"])
	assert.Len(t, counts, 5)
}
