package repository

import (
	"context"
	"fmt"
	"sync"

	repo "health-assistant/internal/domain/interfaces/repository"
)

// MemoryRepository keeps collections in process memory, preserving insertion
// order for FindAll. It backs tests and STORE_DRIVER=memory.
type MemoryRepository[T any] struct {
	mu          sync.RWMutex
	idOf        func(T) string
	collections map[string]*memoryCollection[T]
}

type memoryCollection[T any] struct {
	order []string
	items map[string]T
}

func NewMemoryRepository[T any](idOf func(T) string) *MemoryRepository[T] {
	return &MemoryRepository[T]{idOf: idOf, collections: map[string]*memoryCollection[T]{}}
}

func (r *MemoryRepository[T]) collection(name string) *memoryCollection[T] {
	c, ok := r.collections[name]
	if !ok {
		c = &memoryCollection[T]{items: map[string]T{}}
		r.collections[name] = c
	}
	return c
}

func (r *MemoryRepository[T]) Create(_ context.Context, collectionName string, entity T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.collection(collectionName)
	id := r.idOf(entity)
	if _, exists := c.items[id]; exists {
		return entity, fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrDuplicate)
	}
	c.items[id] = entity
	c.order = append(c.order, id)
	return entity, nil
}

func (r *MemoryRepository[T]) Update(_ context.Context, collectionName string, id string, entity T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.collection(collectionName)
	if _, exists := c.items[id]; !exists {
		return entity, fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	c.items[id] = entity
	return entity, nil
}

func (r *MemoryRepository[T]) Delete(_ context.Context, collectionName string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.collection(collectionName)
	if _, exists := c.items[id]; !exists {
		return fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository[T]) FindByID(_ context.Context, collectionName string, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero T
	c, ok := r.collections[collectionName]
	if !ok {
		return zero, fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	entity, ok := c.items[id]
	if !ok {
		return zero, fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	return entity, nil
}

func (r *MemoryRepository[T]) FindAll(_ context.Context, collectionName string) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collections[collectionName]
	if !ok {
		return nil, nil
	}
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out, nil
}
