package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repository is a get-all/set-one store per logical collection. Filtering
// beyond lookup by id is the caller's job. Records are read-modify-written
// without version stamps, so concurrent writers to the same record race.
type Repository[T any] interface {
	Create(ctx context.Context, collectionName string, entity T) (T, error)
	Update(ctx context.Context, collectionName string, id string, entity T) (T, error)
	Delete(ctx context.Context, collectionName string, id string) error
	FindByID(ctx context.Context, collectionName string, id string) (T, error)
	FindAll(ctx context.Context, collectionName string) ([]T, error)
}
