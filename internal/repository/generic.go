package repository

import (
	"context"
)

// CRUD is the operation set handlers depend on. Repository implements it for every entity.
type CRUD[T any] interface {
	GetAll(ctx context.Context, filter Filter) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	CreateMany(ctx context.Context, recs []T) ([]T, error)
	Update(ctx context.Context, id string, fields Fields) (*UpdateResult, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// BeforeCreateFunc transforms a record before it is handed to the store.
type BeforeCreateFunc[T any] func(ctx context.Context, rec *T) error

// BeforeUpdateFunc transforms partial-update fields before they are handed to the store.
type BeforeUpdateFunc func(ctx context.Context, fields Fields) error

// Option configures a Repository.
type Option[T any] func(*Repository[T])

// WithBeforeCreate registers a hook applied to each record of Create and CreateMany.
func WithBeforeCreate[T any](fn BeforeCreateFunc[T]) Option[T] {
	return func(r *Repository[T]) { r.beforeCreate = fn }
}

// WithBeforeUpdate registers a hook applied to the fields of Update.
func WithBeforeUpdate[T any](fn BeforeUpdateFunc) Option[T] {
	return func(r *Repository[T]) { r.beforeUpdate = fn }
}

// Repository delegates every operation to a Store. It holds no state besides the store and its hooks.
type Repository[T any] struct {
	store        Store[T]
	beforeCreate BeforeCreateFunc[T]
	beforeUpdate BeforeUpdateFunc
}

var _ CRUD[struct{}] = (*Repository[struct{}])(nil)

// New wraps store in a Repository.
func New[T any](store Store[T], opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository[T]) GetAll(ctx context.Context, filter Filter) ([]T, error) {
	return r.store.Get(ctx, filter)
}

// GetByID returns nil when no record has id.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.store.GetOne(ctx, Filter{"_id": id})
}

func (r *Repository[T]) Create(ctx context.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, &ValidationError{Reason: "record is nil"}
	}
	if r.beforeCreate != nil {
		cp := *rec
		if err := r.beforeCreate(ctx, &cp); err != nil {
			return nil, err
		}
		rec = &cp
	}
	return r.store.Create(ctx, rec)
}

func (r *Repository[T]) CreateMany(ctx context.Context, recs []T) ([]T, error) {
	if r.beforeCreate != nil && len(recs) > 0 {
		cp := make([]T, len(recs))
		copy(cp, recs)
		for i := range cp {
			if err := r.beforeCreate(ctx, &cp[i]); err != nil {
				return nil, err
			}
		}
		recs = cp
	}
	return r.store.CreateMany(ctx, recs)
}

func (r *Repository[T]) Update(ctx context.Context, id string, fields Fields) (*UpdateResult, error) {
	if r.beforeUpdate != nil && len(fields) > 0 {
		cp := make(Fields, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		if err := r.beforeUpdate(ctx, cp); err != nil {
			return nil, err
		}
		fields = cp
	}
	return r.store.Update(ctx, id, fields)
}

func (r *Repository[T]) Delete(ctx context.Context, id string) (*T, error) {
	return r.store.Delete(ctx, id)
}
