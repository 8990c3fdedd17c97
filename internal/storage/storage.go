// Package storage persists dropped payloads in a per-x-system tree.
// Swap implementations by changing the concrete type injected at startup —
// the local filesystem store is the default, the MinIO implementation works
// with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested x-system or file does not exist.
var ErrNotFound = errors.New("not found")

// DirStats describes one x-system directory for the metrics endpoint.
type DirStats struct {
	Name         string
	FileCount    int
	LastModified time.Time
}

// Store is the interface for placing and retrieving dropped files.
// Keys are a validated x-system name plus a validated filename; callers
// are responsible for the grammar checks before anything reaches a Store.
type Store interface {
	// Put replaces the file content at {xSystem}/{filename}, creating the
	// x-system namespace if needed. The replace is all-or-nothing: a failed
	// Put never leaves a partial file behind.
	Put(ctx context.Context, xSystem, filename string, content []byte) error
	// Get returns the full content of {xSystem}/{filename}.
	Get(ctx context.Context, xSystem, filename string) ([]byte, error)
	// ListXSystems enumerates x-systems that hold data.
	ListXSystems(ctx context.Context) ([]string, error)
	// ListEntityTypes enumerates filenames stored for one x-system.
	// Returns ErrNotFound when the x-system holds no data at all.
	ListEntityTypes(ctx context.Context, xSystem string) ([]string, error)
	// Stats aggregates per-x-system file counts and newest modification times.
	Stats(ctx context.Context) ([]DirStats, error)
}
