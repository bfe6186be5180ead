// Package store provides the key-value persistence port backing the
// storefront. Each slot holds one opaque value that is always written whole.
package store

import (
	"context"
	"errors"
)

const (
	// ProductsSlot holds the JSON-serialised product list.
	ProductsSlot = "rama-toys-products"
	// BackupIndexSlot holds the JSON list of product backup slot keys.
	BackupIndexSlot = "rama-toys-products:backups"
)

// ErrSlotNotFound indicates the requested slot has never been written.
var ErrSlotNotFound = errors.New("store: slot not found")

// Store reads and overwrites named slots.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Driver names accepted by configuration.
const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)
