package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sukalov/shitsu/pkg/db/models"
	"github.com/sukalov/shitsu/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT,
  address TEXT,
  delivery_method TEXT NOT NULL,
  total INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM order_items").Error)
	require.NoError(t, db.Exec("DELETE FROM orders").Error)

	return db
}

func mustCreateOrder(t *testing.T, db *gorm.DB, mutate func(*models.Order)) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:             uuid.New(),
		CustomerName:   "Анна",
		Phone:          "+79001234567",
		DeliveryMethod: enums.DeliveryMethodCDEK,
		Total:          2500,
		Status:         enums.OrderStatusPending,
		Items: []models.OrderItem{
			{
				ID:        uuid.New(),
				ProductID: uuid.New(),
				Name:      "Утро",
				Price:     2500,
				Quantity:  1,
			},
		},
		CreatedAt: time.Now().UTC(),
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	if mutate != nil {
		mutate(order)
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateOrder(t, db, nil)

	loaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.CustomerName, loaded.CustomerName)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Утро", loaded.Items[0].Name)
	assert.Equal(t, 2500, loaded.Items[0].Price)
}

func TestRepositoryListNewestFirstWithStatusFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	older := mustCreateOrder(t, db, func(o *models.Order) {
		o.Status = enums.OrderStatusPending
		o.CreatedAt = base
	})
	newer := mustCreateOrder(t, db, func(o *models.Order) {
		o.Status = enums.OrderStatusPending
		o.CreatedAt = base.Add(time.Minute)
	})
	mustCreateOrder(t, db, func(o *models.Order) {
		o.Status = enums.OrderStatusShipped
		o.CreatedAt = base.Add(2 * time.Minute)
	})

	status := enums.OrderStatusPending
	orders, err := repo.List(ctx, &status)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateOrder(t, db, nil)
	require.NoError(t, repo.UpdateStatus(ctx, created.ID, enums.OrderStatusConfirmed))

	loaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, loaded.Status)
}

func TestRepositoryDeleteRemovesItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateOrder(t, db, nil)
	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", created.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestRepositoryCountByStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mustCreateOrder(t, db, func(o *models.Order) { o.Status = enums.OrderStatusPending })
	mustCreateOrder(t, db, func(o *models.Order) { o.Status = enums.OrderStatusPending })
	mustCreateOrder(t, db, func(o *models.Order) { o.Status = enums.OrderStatusDelivered })

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[enums.OrderStatusPending])
	assert.Equal(t, int64(1), counts[enums.OrderStatusDelivered])
	assert.Zero(t, counts[enums.OrderStatusShipped])
}
