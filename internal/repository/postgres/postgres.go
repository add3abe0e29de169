// Package postgres implements repository.Store on PostgreSQL. Each collection is a table holding one JSONB
// document per row, encoded as relaxed MongoDB Extended JSON so ids and dates keep their types.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"adoptapi/internal/model"
	"adoptapi/internal/repository"
)

const uniqueViolation = "23505"

// Collection is a repository.Store backed by a JSONB table named after the collection.
// It uses database/sql with parameterized queries and contains no business logic.
type Collection[T any, P repository.EntityPtr[T]] struct {
	db     *sql.DB
	name   string
	unique []string

	qSelect string
	qInsert string
	qUpdate string
	qDelete string
}

var _ repository.Store[model.Pet] = (*Collection[model.Pet, *model.Pet])(nil)

// New binds T to its table in db. The table must exist; see migration.EnsureMigrated.
func New[T any, P repository.EntityPtr[T]](db *sql.DB) *Collection[T, P] {
	name, unique := repository.Describe[T, P]()
	return &Collection[T, P]{
		db:      db,
		name:    name,
		unique:  unique,
		qSelect: fmt.Sprintf(`SELECT doc FROM %s WHERE doc @> $1::jsonb ORDER BY seq`, name),
		qInsert: fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, name),
		qUpdate: fmt.Sprintf(`
		WITH target AS (
			SELECT id, doc FROM %[1]s WHERE id = $1 FOR UPDATE
		), changed AS (
			UPDATE %[1]s t SET doc = t.doc || $2::jsonb
			FROM target
			WHERE t.id = target.id AND target.doc IS DISTINCT FROM target.doc || $2::jsonb
			RETURNING t.id
		)
		SELECT (SELECT COUNT(*) FROM target), (SELECT COUNT(*) FROM changed)`, name),
		qDelete: fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING doc`, name),
	}
}

// Get returns matching documents in insertion order.
func (c *Collection[T, P]) Get(ctx context.Context, filter repository.Filter) ([]T, error) {
	q, err := c.filterJSON(filter)
	if err != nil {
		return nil, err
	}
	rows, err := c.db.QueryContext(ctx, c.qSelect, q)
	if err != nil {
		return nil, errors.Wrapf(err, "postgres: select %s", c.name)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrapf(err, "postgres: scan %s", c.name)
		}
		rec, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "postgres: select %s", c.name)
	}
	return items, nil
}

func (c *Collection[T, P]) GetOne(ctx context.Context, filter repository.Filter) (*T, error) {
	q, err := c.filterJSON(filter)
	if err != nil {
		return nil, err
	}
	var raw []byte
	err = c.db.QueryRowContext(ctx, c.qSelect+" LIMIT 1", q).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "postgres: select one %s", c.name)
	}
	return c.decode(raw)
}

func (c *Collection[T, P]) Create(ctx context.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, &repository.ValidationError{Reason: "record is nil"}
	}
	cp := *rec
	if err := repository.PrepareInsert[T, P](&cp); err != nil {
		return nil, err
	}
	doc, err := c.encode(&cp)
	if err != nil {
		return nil, err
	}
	if _, err := c.db.ExecContext(ctx, c.qInsert, P(&cp).ObjectID().Hex(), doc); err != nil {
		return nil, c.writeErr(err, "insert")
	}
	return &cp, nil
}

// CreateMany inserts the batch in a single transaction: either every record is stored or none is.
func (c *Collection[T, P]) CreateMany(ctx context.Context, recs []T) ([]T, error) {
	if len(recs) == 0 {
		return []T{}, nil
	}
	batch := make([]T, len(recs))
	copy(batch, recs)
	docs := make([]string, len(batch))
	for i := range batch {
		if err := repository.PrepareInsert[T, P](&batch[i]); err != nil {
			return nil, err
		}
		doc, err := c.encode(&batch[i])
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: begin")
	}
	for i := range batch {
		if _, err := tx.ExecContext(ctx, c.qInsert, P(&batch[i]).ObjectID().Hex(), docs[i]); err != nil {
			_ = tx.Rollback()
			return nil, c.writeErr(err, "insert many")
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "postgres: commit")
	}
	return batch, nil
}

// Update merges fields into the stored document. An unchanged document counts as matched, not modified.
func (c *Collection[T, P]) Update(ctx context.Context, id string, fields repository.Fields) (*repository.UpdateResult, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	set, err := repository.CoerceFields[T](fields)
	if err != nil {
		return nil, err
	}
	patch, err := toJSON(set)
	if err != nil {
		return nil, err
	}
	var res repository.UpdateResult
	err = c.db.QueryRowContext(ctx, c.qUpdate, oid.Hex(), patch).Scan(&res.MatchedCount, &res.ModifiedCount)
	if err != nil {
		return nil, c.writeErr(err, "update")
	}
	return &res, nil
}

// Delete removes the row and returns its document. It does not return an error if the row does not exist.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	var raw []byte
	err = c.db.QueryRowContext(ctx, c.qDelete, oid.Hex()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "postgres: delete %s", c.name)
	}
	return c.decode(raw)
}

func (c *Collection[T, P]) filterJSON(filter repository.Filter) (string, error) {
	f, err := repository.CoerceFilter[T](filter)
	if err != nil {
		return "", err
	}
	return toJSON(f)
}

func (c *Collection[T, P]) encode(rec *T) (string, error) {
	b, err := bson.MarshalExtJSON(rec, false, false)
	if err != nil {
		return "", errors.Wrapf(err, "postgres: encode %s", c.name)
	}
	return string(b), nil
}

func (c *Collection[T, P]) decode(raw []byte) (*T, error) {
	var rec T
	if err := bson.UnmarshalExtJSON(raw, false, &rec); err != nil {
		return nil, errors.Wrapf(err, "postgres: decode %s", c.name)
	}
	return &rec, nil
}

// writeErr maps unique violations to *repository.ConflictError.
func (c *Collection[T, P]) writeErr(err error, op string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return errors.Wrapf(err, "postgres: %s %s", op, c.name)
	}
	field := "_id"
	for _, f := range c.unique {
		if strings.Contains(pgErr.ConstraintName, f) {
			field = f
			break
		}
	}
	return &repository.ConflictError{Field: field}
}

func toJSON(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := bson.MarshalExtJSON(bson.M(m), false, false)
	if err != nil {
		return "", errors.Wrap(err, "postgres: encode filter")
	}
	return string(b), nil
}
