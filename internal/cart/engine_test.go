package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func snapshotFor(name string, price int) Snapshot {
	return Snapshot{
		ProductID: uuid.New(),
		Name:      name,
		Price:     price,
		Images:    []string{"storage-1"},
	}
}

func TestAddItemMergesQuantity(t *testing.T) {
	painting := snapshotFor("Утро", 2500)

	state := AddItem(EmptyState(), painting, 1)
	state = AddItem(state, painting, 1)

	assert.Len(t, state.Lines, 1)
	assert.Equal(t, 2, state.Lines[0].Quantity)
	assert.True(t, state.IsOpen)
}

func TestAddItemAppendsNewLineInOrder(t *testing.T) {
	first := snapshotFor("Утро", 2500)
	second := snapshotFor("Ночь", 800)

	state := AddItem(EmptyState(), first, 1)
	state = AddItem(state, second, 1)

	assert.Len(t, state.Lines, 2)
	assert.Equal(t, first.ProductID, state.Lines[0].ProductID)
	assert.Equal(t, second.ProductID, state.Lines[1].ProductID)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	painting := snapshotFor("Утро", 2500)
	state := AddItem(EmptyState(), painting, 1)

	state = RemoveItem(state, painting.ProductID)
	assert.Empty(t, state.Lines)

	again := RemoveItem(state, painting.ProductID)
	assert.Equal(t, state.Lines, again.Lines)

	unknown := RemoveItem(again, uuid.New())
	assert.Empty(t, unknown.Lines)
}

func TestSetQuantityFloorRemovesLine(t *testing.T) {
	painting := snapshotFor("Утро", 2500)
	state := AddItem(EmptyState(), painting, 3)

	state = SetQuantity(state, painting.ProductID, 0)
	assert.Empty(t, state.Lines)

	state = AddItem(state, painting, 2)
	state = SetQuantity(state, painting.ProductID, -5)
	assert.Empty(t, state.Lines)
}

func TestSetQuantityHasNoUpperBound(t *testing.T) {
	painting := snapshotFor("Утро", 2500)
	state := AddItem(EmptyState(), painting, 1)

	state = SetQuantity(state, painting.ProductID, 100000)
	assert.Equal(t, 100000, state.Lines[0].Quantity)
}

func TestClearLeavesVisibilityAlone(t *testing.T) {
	painting := snapshotFor("Утро", 2500)
	state := AddItem(EmptyState(), painting, 1)
	assert.True(t, state.IsOpen)

	state = Clear(state)
	assert.Empty(t, state.Lines)
	assert.True(t, state.IsOpen)
}

func TestTotalMatchesSumOfLines(t *testing.T) {
	painting := snapshotFor("Утро", 2500)
	postcard := snapshotFor("Открытка", 800)

	state := AddItem(EmptyState(), painting, 2)
	state = AddItem(state, postcard, 1)

	assert.Equal(t, 2*2500+800, Total(state))
	assert.Equal(t, 3, Count(state))
}

func TestSnapshotIsolatedFromLaterEdits(t *testing.T) {
	painting := snapshotFor("Утро", 2500)
	state := AddItem(EmptyState(), painting, 1)

	// a price change after the add must not affect the cart line
	painting.Price = 9999
	painting.Images[0] = "changed"

	assert.Equal(t, 2500, state.Lines[0].Price)
	assert.Equal(t, 2500, Total(state))
	assert.Equal(t, "storage-1", state.Lines[0].Images[0])
}
