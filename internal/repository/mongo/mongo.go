// Package mongo implements repository.Store on a MongoDB collection.
package mongo

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adoptapi/internal/model"
	"adoptapi/internal/repository"
)

// Collection is a repository.Store backed by one MongoDB collection.
type Collection[T any, P repository.EntityPtr[T]] struct {
	coll   *driver.Collection
	name   string
	unique []string
}

var _ repository.Store[model.Pet] = (*Collection[model.Pet, *model.Pet])(nil)

// New binds T to its collection in db.
func New[T any, P repository.EntityPtr[T]](db *driver.Database) *Collection[T, P] {
	name, unique := repository.Describe[T, P]()
	return &Collection[T, P]{coll: db.Collection(name), name: name, unique: unique}
}

// EnsureIndexes creates a unique index for every unique field of T. Existing indexes are left as they are.
func (c *Collection[T, P]) EnsureIndexes(ctx context.Context) error {
	if len(c.unique) == 0 {
		return nil
	}
	models := make([]driver.IndexModel, 0, len(c.unique))
	for _, f := range c.unique {
		models = append(models, driver.IndexModel{
			Keys:    bson.D{{Key: f, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(f + "_unique"),
		})
	}
	if _, err := c.coll.Indexes().CreateMany(ctx, models); err != nil {
		return errors.Wrapf(err, "mongo: create indexes on %s", c.name)
	}
	return nil
}

func (c *Collection[T, P]) Get(ctx context.Context, filter repository.Filter) ([]T, error) {
	q, err := c.query(filter)
	if err != nil {
		return nil, err
	}
	cur, err := c.coll.Find(ctx, q)
	if err != nil {
		return nil, errors.Wrapf(err, "mongo: find %s", c.name)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrapf(err, "mongo: decode %s", c.name)
	}
	return out, nil
}

func (c *Collection[T, P]) GetOne(ctx context.Context, filter repository.Filter) (*T, error) {
	q, err := c.query(filter)
	if err != nil {
		return nil, err
	}
	var rec T
	err = c.coll.FindOne(ctx, q).Decode(&rec)
	if errors.Is(err, driver.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "mongo: find one %s", c.name)
	}
	return &rec, nil
}

func (c *Collection[T, P]) Create(ctx context.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, &repository.ValidationError{Reason: "record is nil"}
	}
	cp := *rec
	if err := repository.PrepareInsert[T, P](&cp); err != nil {
		return nil, err
	}
	if _, err := c.coll.InsertOne(ctx, &cp); err != nil {
		return nil, c.writeErr(err, "insert")
	}
	return &cp, nil
}

// CreateMany validates the whole batch first, then issues one ordered insert. Without a transaction, records
// preceding a failed write stay persisted.
func (c *Collection[T, P]) CreateMany(ctx context.Context, recs []T) ([]T, error) {
	if len(recs) == 0 {
		return []T{}, nil
	}
	batch := make([]T, len(recs))
	copy(batch, recs)
	docs := make([]any, len(batch))
	for i := range batch {
		if err := repository.PrepareInsert[T, P](&batch[i]); err != nil {
			return nil, err
		}
		docs[i] = &batch[i]
	}
	if _, err := c.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, c.writeErr(err, "insert many")
	}
	return batch, nil
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
	if len(set) == 0 {
		n, err := c.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
		if err != nil {
			return nil, errors.Wrapf(err, "mongo: count %s", c.name)
		}
		return &repository.UpdateResult{MatchedCount: n}, nil
	}
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(set)})
	if err != nil {
		return nil, c.writeErr(err, "update")
	}
	return &repository.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (c *Collection[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	var rec T
	err = c.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&rec)
	if errors.Is(err, driver.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "mongo: delete %s", c.name)
	}
	return &rec, nil
}

func (c *Collection[T, P]) query(filter repository.Filter) (bson.M, error) {
	f, err := repository.CoerceFilter[T](filter)
	if err != nil {
		return nil, err
	}
	return bson.M(f), nil
}

// writeErr maps duplicate key failures to *repository.ConflictError.
func (c *Collection[T, P]) writeErr(err error, op string) error {
	if !driver.IsDuplicateKeyError(err) {
		return errors.Wrapf(err, "mongo: %s %s", op, c.name)
	}
	field := ""
	msg := err.Error()
	for _, f := range c.unique {
		if strings.Contains(msg, f) {
			field = f
			break
		}
	}
	return &repository.ConflictError{Field: field}
}
