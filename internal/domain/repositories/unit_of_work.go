package repositories

import "context"

// UnitOfWork runs a function inside a single database transaction. Every
// repository call made through the ctx passed to f joins that transaction;
// if f returns an error the whole transaction is rolled back.
type UnitOfWork interface {
	Do(ctx context.Context, f func(ctx context.Context) error) error
	// WithLock behaves like Do but acquires a serializing advisory lock
	// named by key before running f.
	WithLock(ctx context.Context, key string, f func(ctx context.Context) error) error
}
