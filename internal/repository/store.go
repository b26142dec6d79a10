// Package repository persists application state as keyed JSON blobs.
// The desktop host hands us a data directory (bbolt file); when that is not
// available the in-memory store keeps the same contract so the rest of the
// app never knows the difference.
package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Load when no blob exists under the key.
var ErrKeyNotFound = errors.New("repository: clave no encontrada")

// Store is the minimal persistence capability the application depends on:
// load/save a JSON-serializable value by key. Writes replace the whole blob.
type Store interface {
	Load(ctx context.Context, key string, v any) error
	Save(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// Storage keys. They mirror the browser-storage keys of the original UI so
// a backup taken there restores here unchanged.
const (
	keyProducts         = "presets"
	keyBusinessSettings = "businessSettings"
	keyQuotes           = "saved_quotes"
	keyReports          = "saved_reports"
	keyClients          = "clients"
)
