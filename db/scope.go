package db

import (
	"context"

	"gorm.io/gorm"
)

// Scoped runs fn on one connection checked out of the pool for the duration
// of the call. The connection is returned whether fn succeeds or not.
// conn is a fresh session, so fn may chain several queries on it.
func Scoped(ctx context.Context, db *gorm.DB, fn func(conn *gorm.DB) error) error {
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(conn.Session(&gorm.Session{}))
	})
}
