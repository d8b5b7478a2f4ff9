package cart

import "github.com/google/uuid"

// Line is a cart entry carrying a snapshot of the product at add time.
// Later catalog edits never touch lines already in a cart.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	Images    []string  `json:"images"`
	Quantity  int       `json:"quantity"`
}

// State is the full cart contents plus the sidebar visibility flag.
// Lines keep insertion order.
type State struct {
	Lines  []Line `json:"lines"`
	IsOpen bool   `json:"is_open"`
}

// Snapshot captures the product fields frozen into a line when it is added.
type Snapshot struct {
	ProductID uuid.UUID
	Name      string
	Price     int
	Images    []string
}

// EmptyState returns a cart with no lines.
func EmptyState() State {
	return State{Lines: []Line{}}
}

// AddItem merges the product into the cart: an existing line gains
// quantity, a new product appends a line. Adding always opens the cart.
func AddItem(state State, snapshot Snapshot, quantity int) State {
	if quantity <= 0 {
		quantity = 1
	}

	next := cloneState(state)
	for i := range next.Lines {
		if next.Lines[i].ProductID == snapshot.ProductID {
			next.Lines[i].Quantity += quantity
			next.IsOpen = true
			return next
		}
	}

	images := append([]string(nil), snapshot.Images...)
	if images == nil {
		images = []string{}
	}
	next.Lines = append(next.Lines, Line{
		ProductID: snapshot.ProductID,
		Name:      snapshot.Name,
		Price:     snapshot.Price,
		Images:    images,
		Quantity:  quantity,
	})
	next.IsOpen = true
	return next
}

// RemoveItem drops the line for the product. Removing an absent product
// is a no-op.
func RemoveItem(state State, productID uuid.UUID) State {
	next := cloneState(state)
	lines := next.Lines[:0]
	for _, line := range next.Lines {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}
	next.Lines = lines
	return next
}

// SetQuantity replaces the quantity for the product's line. A quantity of
// zero or below removes the line. There is no upper bound.
func SetQuantity(state State, productID uuid.UUID, quantity int) State {
	if quantity <= 0 {
		return RemoveItem(state, productID)
	}
	next := cloneState(state)
	for i := range next.Lines {
		if next.Lines[i].ProductID == productID {
			next.Lines[i].Quantity = quantity
			break
		}
	}
	return next
}

// Clear empties the cart without touching the visibility flag.
func Clear(state State) State {
	next := cloneState(state)
	next.Lines = []Line{}
	return next
}

// SetOpen flips the sidebar visibility flag.
func SetOpen(state State, open bool) State {
	next := cloneState(state)
	next.IsOpen = open
	return next
}

// Total derives the cart total from the line snapshots.
func Total(state State) int {
	total := 0
	for _, line := range state.Lines {
		total += line.Price * line.Quantity
	}
	return total
}

// Count derives the number of units across all lines.
func Count(state State) int {
	count := 0
	for _, line := range state.Lines {
		count += line.Quantity
	}
	return count
}

func cloneState(state State) State {
	lines := make([]Line, len(state.Lines))
	copy(lines, state.Lines)
	return State{Lines: lines, IsOpen: state.IsOpen}
}
