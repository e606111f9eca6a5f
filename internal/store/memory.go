package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/vyrodovalexey/stockroom/internal/model"
)

// MemoryStore implements Store interface with an ordered in-memory collection.
type MemoryStore struct {
	mu    sync.RWMutex
	items []model.Item
}

// NewMemoryStore creates a new MemoryStore holding a copy of the given items.
func NewMemoryStore(items ...model.Item) *MemoryStore {
	s := &MemoryStore{
		items: make([]model.Item, 0, len(items)),
	}
	s.items = append(s.items, items...)

	return s
}

// List returns all items from the store.
func (s *MemoryStore) List(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(model.Item) bool { return true }), nil
}

// Get retrieves an item by its ID.
func (s *MemoryStore) Get(ctx context.Context, id int) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	item := s.items[idx]
	return &item, nil
}

// Categories returns the distinct categories present in the store.
func (s *MemoryStore) Categories(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list categories: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.items))
	categories := make([]string, 0, len(s.items))
	for _, item := range s.items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}

	return categories, nil
}

// ByCategory returns items whose category matches exactly.
// An empty category returns every item.
func (s *MemoryStore) ByCategory(ctx context.Context, category string) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("filter by category: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == "" {
		return s.filter(func(model.Item) bool { return true }), nil
	}

	return s.filter(func(item model.Item) bool { return item.Category == category }), nil
}

// BySupplier returns items whose supplier matches exactly.
func (s *MemoryStore) BySupplier(ctx context.Context, supplier string) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("filter by supplier: %w", ctx.Err())
	default:
	}

	if supplier == "" {
		return nil, ErrSupplierRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(item model.Item) bool { return item.Supplier == supplier }), nil
}

// Create adds a new item to the store and returns it with its assigned ID.
func (s *MemoryStore) Create(ctx context.Context, input *model.ItemInput) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	if input == nil {
		return nil, ErrNilItem
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newItem := input.ToItem(s.maxID() + 1)
	s.items = append(s.items, newItem)

	return &newItem, nil
}

// Delete removes an item from the store by its ID.
func (s *MemoryStore) Delete(ctx context.Context, id int) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	return &removed, nil
}

// Len returns the number of items currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// filter copies matching items out. Callers must hold the lock.
func (s *MemoryStore) filter(keep func(model.Item) bool) []model.Item {
	items := make([]model.Item, 0, len(s.items))
	for _, item := range s.items {
		if keep(item) {
			items = append(items, item)
		}
	}

	return items
}

// indexOf returns the position of the first item with id, or -1.
// Callers must hold the lock.
func (s *MemoryStore) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}

	return -1
}

// maxID returns the largest ID held, or 0 when empty. Callers must hold the lock.
func (s *MemoryStore) maxID() int {
	highest := 0
	for _, item := range s.items {
		if item.ID > highest {
			highest = item.ID
		}
	}

	return highest
}
