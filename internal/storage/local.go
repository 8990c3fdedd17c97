package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Local stores files under a root directory, one subdirectory per x-system.
type Local struct {
	root string
}

// NewLocal creates the root directory if needed and returns a Local store.
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create drop directory %q: %w", root, err)
	}
	return &Local{root: root}, nil
}

// Put writes content to a hidden staging file in the destination directory
// and renames it into place. Rename within one directory is atomic, so a
// reader never observes a torn file and concurrent writers to the same
// target degrade to last-writer-wins instead of interleaving.
func (s *Local) Put(_ context.Context, xSystem, filename string, content []byte) error {
	dir := filepath.Join(s.root, xSystem)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}

	staging := filepath.Join(dir, ".pending-"+uuid.NewString())
	if err := os.WriteFile(staging, content, 0o644); err != nil {
		return fmt.Errorf("write staging file: %w", err)
	}

	destination := filepath.Join(dir, filename)
	if err := os.Rename(staging, destination); err != nil {
		_ = os.Remove(staging)
		return fmt.Errorf("rename into %q: %w", destination, err)
	}
	return nil
}

// Get reads the full content of {xSystem}/{filename}.
func (s *Local) Get(_ context.Context, xSystem, filename string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(s.root, xSystem, filename))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", xSystem, filename, err)
	}
	return content, nil
}

// ListXSystems returns the immediate subdirectories of the root.
func (s *Local) ListXSystems(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read drop directory: %w", err)
	}

	xSystems := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			xSystems = append(xSystems, entry.Name())
		}
	}
	return xSystems, nil
}

// ListEntityTypes returns the filenames stored directly inside one
// x-system directory. Staging files are skipped.
func (s *Local) ListEntityTypes(_ context.Context, xSystem string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, xSystem))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read directory for %q: %w", xSystem, err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		filenames = append(filenames, entry.Name())
	}
	return filenames, nil
}

// Stats scans the root and reports, for each x-system directory, the file
// count and the newest modification time of the directory or its files.
func (s *Local) Stats(_ context.Context) ([]DirStats, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read drop directory: %w", err)
	}

	var stats []DirStats
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(s.root, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		lastModified := info.ModTime()

		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		count := 0
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			count++
			if info, err := file.Info(); err == nil && info.ModTime().After(lastModified) {
				lastModified = info.ModTime()
			}
		}
		stats = append(stats, DirStats{
			Name:         entry.Name(),
			FileCount:    count,
			LastModified: lastModified,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats, nil
}

var _ Store = (*Local)(nil)
