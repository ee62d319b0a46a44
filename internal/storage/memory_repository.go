package storage

import (
	"context"
	"slices"

	"github.com/sandeepkv93/todocal/internal/model"
)

// MemoryRepository is a slice-backed Repository. It is not safe for
// concurrent use; the update loop is its only caller.
type MemoryRepository struct {
	todos []model.Todo
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{todos: make([]model.Todo, 0)}
}

func (r *MemoryRepository) Insert(_ context.Context, in model.Todo) error {
	if r.indexOf(in.ID) >= 0 {
		return ErrDuplicateID
	}
	r.todos = slices.Insert(r.todos, 0, in.Clone())
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (model.Todo, error) {
	i := r.indexOf(id)
	if i < 0 {
		return model.Todo{}, ErrNotFound
	}
	return r.todos[i].Clone(), nil
}

func (r *MemoryRepository) Update(_ context.Context, in model.Todo) error {
	i := r.indexOf(in.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.todos[i] = in.Clone()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.todos = slices.Delete(r.todos, i, i+1)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]model.Todo, error) {
	out := make([]model.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	return len(r.todos), nil
}

func (r *MemoryRepository) Close() error { return nil }

func (r *MemoryRepository) indexOf(id string) int {
	return slices.IndexFunc(r.todos, func(t model.Todo) bool { return t.ID == id })
}
