package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	dbadapter "github.com/kasuganosora/datapad/db"
	"github.com/kasuganosora/datapad/model"
	"gorm.io/gorm"
)

// record is a keyed document that validates itself.
type record interface {
	Validate() error
}

// collection names a keyed table. Table is empty for models with a fixed
// table name; listings are ordered by Order, or by name when empty.
type collection struct {
	Kind  string
	Table string
	Order string
}

func (c collection) from(conn *gorm.DB) *gorm.DB {
	if c.Table == "" {
		return conn
	}
	return conn.Table(c.Table)
}

// decodeRecord parses the JSON in query parameter key into dst and runs its
// validation. Unknown fields are rejected.
func decodeRecord(ev Event, key string, dst record) error {
	raw, err := param(ev, key)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrInvalidRecord, key, err)
	}
	return dst.Validate()
}

func listRecords[T any](ctx context.Context, db *gorm.DB, c collection, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	order := c.Order
	if order == "" {
		order = "name"
	}
	out := make([]T, 0)
	err := dbadapter.Scoped(ctx, db, func(conn *gorm.DB) error {
		return c.from(conn).Scopes(scopes...).Order(order).Find(&out).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.Kind, err)
	}
	return out, nil
}

func insertRecord(ctx context.Context, db *gorm.DB, c collection, name string, rec any) error {
	err := dbadapter.Scoped(ctx, db, func(conn *gorm.DB) error {
		return c.from(conn).Create(rec).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s %q %w", c.Kind, name, ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert %s %q: %w", c.Kind, name, err)
	}
	return nil
}

// editRecord replaces every column of the named record except its key.
func editRecord[T any](ctx context.Context, db *gorm.DB, c collection, name string, rec *T) error {
	return dbadapter.Scoped(ctx, db, func(conn *gorm.DB) error {
		res := c.from(conn).Where("name = ?", name).Select("*").Omit("id", "name").Updates(rec)
		if res.Error != nil {
			return fmt.Errorf("edit %s %q: %w", c.Kind, name, res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}
		// MySQL reports zero rows for an update that changes nothing.
		var n int64
		if err := c.from(conn).Model(new(T)).Where("name = ?", name).Count(&n).Error; err != nil {
			return fmt.Errorf("edit %s %q: %w", c.Kind, name, err)
		}
		if n == 0 {
			return fmt.Errorf("%s %q %w", c.Kind, name, ErrNotFound)
		}
		return nil
	})
}

func deleteRecord[T any](ctx context.Context, db *gorm.DB, c collection, name string) error {
	return dbadapter.Scoped(ctx, db, func(conn *gorm.DB) error {
		res := c.from(conn).Where("name = ?", name).Delete(new(T))
		if res.Error != nil {
			return fmt.Errorf("delete %s %q: %w", c.Kind, name, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s %q %w", c.Kind, name, ErrNotFound)
		}
		return nil
	})
}
