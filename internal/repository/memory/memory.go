// Package memory implements repository.Store in process memory. Records are kept bson-encoded so that every
// read returns an independent copy with the same field semantics as the mongo backend.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adoptapi/internal/model"
	"adoptapi/internal/repository"
)

// Collection stores one entity type. Safe for concurrent use.
type Collection[T any, P repository.EntityPtr[T]] struct {
	mu     sync.RWMutex
	name   string
	unique []string
	ids    []primitive.ObjectID
	docs   []bson.Raw
}

// New returns an empty collection for T.
func New[T any, P repository.EntityPtr[T]]() *Collection[T, P] {
	name, unique := repository.Describe[T, P]()
	return &Collection[T, P]{name: name, unique: unique}
}

var _ repository.Store[model.Pet] = (*Collection[model.Pet, *model.Pet])(nil)

func (c *Collection[T, P]) Get(ctx context.Context, filter repository.Filter) ([]T, error) {
	f, err := repository.CoerceFilter[T](filter)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, raw := range c.docs {
		rec, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		if matches(rec, f) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (c *Collection[T, P]) GetOne(ctx context.Context, filter repository.Filter) (*T, error) {
	f, err := repository.CoerceFilter[T](filter)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, raw := range c.docs {
		rec, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		if matches(rec, f) {
			return rec, nil
		}
	}
	return nil, nil
}

func (c *Collection[T, P]) Create(ctx context.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, &repository.ValidationError{Reason: "record is nil"}
	}
	out, err := c.CreateMany(ctx, []T{*rec})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// CreateMany validates and checks uniqueness for the whole batch before storing any record.
func (c *Collection[T, P]) CreateMany(ctx context.Context, recs []T) ([]T, error) {
	if len(recs) == 0 {
		return []T{}, nil
	}
	batch := make([]T, len(recs))
	copy(batch, recs)
	for i := range batch {
		if err := repository.PrepareInsert[T, P](&batch[i]); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	others, err := c.decodeAll()
	if err != nil {
		return nil, err
	}
	raws := make([]bson.Raw, len(batch))
	for i := range batch {
		id := P(&batch[i]).ObjectID()
		if c.indexOf(id) >= 0 || duplicateID[T, P](batch[:i], id) {
			return nil, &repository.ConflictError{Field: "_id"}
		}
		if field, dup := c.violatesUnique(&batch[i], others, primitive.NilObjectID); dup {
			return nil, &repository.ConflictError{Field: field}
		}
		raw, err := bson.Marshal(&batch[i])
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s", c.name)
		}
		raws[i] = raw
		others = append(others, batch[i])
	}

	out := make([]T, len(batch))
	for i, raw := range raws {
		c.ids = append(c.ids, P(&batch[i]).ObjectID())
		c.docs = append(c.docs, raw)
		rec, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		out[i] = *rec
	}
	return out, nil
}

func (c *Collection[T, P]) Update(ctx context.Context, id string, fields repository.Fields) (*repository.UpdateResult, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	set, err := repository.CoerceFields[T](fields)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(oid)
	if idx < 0 {
		return &repository.UpdateResult{}, nil
	}
	rec, err := c.decode(c.docs[idx])
	if err != nil {
		return nil, err
	}
	for k, v := range set {
		repository.SetField(rec, k, v)
	}
	raw, err := bson.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", c.name)
	}
	if bytes.Equal(raw, c.docs[idx]) {
		return &repository.UpdateResult{MatchedCount: 1}, nil
	}

	existing, err := c.decodeAll()
	if err != nil {
		return nil, err
	}
	if field, dup := c.violatesUnique(rec, existing, oid); dup {
		return nil, &repository.ConflictError{Field: field}
	}
	c.docs[idx] = raw
	return &repository.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (c *Collection[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(oid)
	if idx < 0 {
		return nil, nil
	}
	rec, err := c.decode(c.docs[idx])
	if err != nil {
		return nil, err
	}
	c.ids = append(c.ids[:idx], c.ids[idx+1:]...)
	c.docs = append(c.docs[:idx], c.docs[idx+1:]...)
	return rec, nil
}

// Len returns the number of stored records.
func (c *Collection[T, P]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

func (c *Collection[T, P]) decode(raw bson.Raw) (*T, error) {
	var rec T
	if err := bson.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrapf(err, "decode %s", c.name)
	}
	return &rec, nil
}

func (c *Collection[T, P]) decodeAll() ([]T, error) {
	out := make([]T, 0, len(c.docs))
	for _, raw := range c.docs {
		rec, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (c *Collection[T, P]) indexOf(id primitive.ObjectID) int {
	for i, v := range c.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// violatesUnique returns the first unique field of rec already held by a record in others, skipping self.
func (c *Collection[T, P]) violatesUnique(rec *T, others []T, self primitive.ObjectID) (string, bool) {
	for _, field := range c.unique {
		want, ok := repository.FieldValue(rec, field)
		if !ok {
			continue
		}
		for i := range others {
			if !self.IsZero() && P(&others[i]).ObjectID() == self {
				continue
			}
			got, _ := repository.FieldValue(&others[i], field)
			if repository.SameValue(want, got) {
				return field, true
			}
		}
	}
	return "", false
}

func duplicateID[T any, P repository.EntityPtr[T]](recs []T, id primitive.ObjectID) bool {
	for i := range recs {
		if P(&recs[i]).ObjectID() == id {
			return true
		}
	}
	return false
}

func matches[T any](rec *T, filter repository.Filter) bool {
	for k, want := range filter {
		got, ok := repository.FieldValue(rec, k)
		if !ok || !repository.SameValue(got, want) {
			return false
		}
	}
	return true
}
