// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/vyrodovalexey/stockroom/internal/model"
)

// Store errors.
var (
	ErrNotFound         = errors.New("item not found")
	ErrNilItem          = errors.New("item cannot be nil")
	ErrSupplierRequired = errors.New("supplier parameter required")
)

// Store defines the interface for inventory storage operations.
type Store interface {
	// List returns all items in insertion order.
	List(ctx context.Context) ([]model.Item, error)

	// Get retrieves an item by its ID.
	Get(ctx context.Context, id int) (*model.Item, error)

	// Categories returns each category once, in the order first observed.
	Categories(ctx context.Context) ([]string, error)

	// ByCategory returns items in the given category, or all items when category is empty.
	ByCategory(ctx context.Context, category string) ([]model.Item, error)

	// BySupplier returns items from the given supplier. The supplier is required.
	BySupplier(ctx context.Context, supplier string) ([]model.Item, error)

	// Create validates the input, assigns the next ID and appends the item.
	Create(ctx context.Context, input *model.ItemInput) (*model.Item, error)

	// Delete removes an item by its ID and returns it.
	Delete(ctx context.Context, id int) (*model.Item, error)
}
