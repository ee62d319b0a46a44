package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/todocal/internal/model"
)

var (
	ErrNotFound    = errors.New("storage: not found")
	ErrDuplicateID = errors.New("storage: duplicate id")
)

// Repository keeps todos in newest-first insertion order. Implementations
// return copies; callers never share memory with stored records.
type Repository interface {
	// Insert places the todo at the front of the order.
	Insert(ctx context.Context, in model.Todo) error
	Get(ctx context.Context, id string) (model.Todo, error)
	Update(ctx context.Context, in model.Todo) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Todo, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
