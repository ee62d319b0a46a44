// Package store owns the todo collection and its identity semantics.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/storage"
)

// ErrNotFound is returned for operations on an id the store does not hold.
var ErrNotFound = storage.ErrNotFound

// IDFunc returns a fresh todo id.
type IDFunc func() (string, error)

// Clock returns the current moment.
type Clock func() time.Time

// NewUUIDv7 generates time-ordered ids. Uniqueness does not depend on clock
// resolution: v7 carries random bits after the millisecond timestamp.
func NewUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("store: generate id: %w", err)
	}
	return id.String(), nil
}

type Options struct {
	NewID IDFunc
	Now   Clock
	// CreatedAtLayout formats Todo.CreatedAt. Defaults to model.CreatedAtLayout.
	CreatedAtLayout string
}

// Store is the single writer of the todo collection. It is not safe for
// concurrent use and never notifies observers.
type Store struct {
	repo   storage.Repository
	newID  IDFunc
	now    Clock
	layout string
}

func New(repo storage.Repository, opts Options) (*Store, error) {
	if repo == nil {
		return nil, errors.New("store: nil repository")
	}
	s := &Store{
		repo:   repo,
		newID:  opts.NewID,
		now:    opts.Now,
		layout: opts.CreatedAtLayout,
	}
	if s.newID == nil {
		s.newID = NewUUIDv7
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.layout == "" {
		s.layout = model.CreatedAtLayout
	}
	return s, nil
}

// Now exposes the injected clock so derived views agree with CreatedAt stamps.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Create(ctx context.Context, in model.Input) (model.Todo, error) {
	norm, err := in.Normalize()
	if err != nil {
		return model.Todo{}, err
	}
	id, err := s.newID()
	if err != nil {
		return model.Todo{}, err
	}
	todo := norm.Apply(model.Todo{
		ID:        id,
		CreatedAt: s.now().Format(s.layout),
	})
	if err := todo.Validate(); err != nil {
		return model.Todo{}, err
	}
	if err := s.repo.Insert(ctx, todo); err != nil {
		return model.Todo{}, fmt.Errorf("store: insert todo: %w", err)
	}
	return todo.Clone(), nil
}

// Update replaces title, description, due date and tags. Validation runs
// before the lookup, so an empty title on a missing id reports validation.
func (s *Store) Update(ctx context.Context, id string, in model.Input) (model.Todo, error) {
	norm, err := in.Normalize()
	if err != nil {
		return model.Todo{}, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	next := norm.Apply(current)
	if err := s.repo.Update(ctx, next); err != nil {
		return model.Todo{}, err
	}
	return next.Clone(), nil
}

func (s *Store) ToggleCompleted(ctx context.Context, id string) (model.Todo, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	current.Completed = !current.Completed
	if err := s.repo.Update(ctx, current); err != nil {
		return model.Todo{}, err
	}
	return current, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Store) Get(ctx context.Context, id string) (model.Todo, error) {
	return s.repo.Get(ctx, id)
}

// List returns every todo, newest first. It is never filtered.
func (s *Store) List(ctx context.Context) ([]model.Todo, error) {
	return s.repo.List(ctx)
}

func (s *Store) Len(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Store) Close() error {
	return s.repo.Close()
}
