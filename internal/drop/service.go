// Package drop implements the upload, download and listing endpoints of
// the data-drop gateway.
package drop

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/datadrop/service/internal/storage"
)

// Service sequences authorization, validation and the content sink for
// upload requests, and serves reads straight from the store.
type Service struct {
	store storage.Store
	queue *Queue // nil means writes are synchronous
	log   *slog.Logger
}

// NewService creates the drop service. Pass a nil queue to make every
// write synchronous; the handler then reports write failures to the
// client instead of logging them after the fact.
func NewService(store storage.Store, queue *Queue, log *slog.Logger) *Service {
	return &Service{store: store, queue: queue, log: log}
}

// drop places content at {xSystem}/{filename}. The returned bool reports
// whether the write was deferred to the background queue; in that case the
// error is always nil and durability is best-effort.
func (s *Service) drop(ctx context.Context, xSystem, filename string, content []byte) (bool, error) {
	if s.queue != nil {
		s.queue.Enqueue(xSystem, filename, content)
		return true, nil
	}
	return false, s.store.Put(ctx, xSystem, filename, content)
}

// download reads the stored .json artifact for an entity type.
func (s *Service) download(ctx context.Context, xSystem, entityType string) ([]byte, error) {
	return s.store.Get(ctx, xSystem, entityType+".json")
}

// listXSystems enumerates x-systems that hold data.
func (s *Service) listXSystems(ctx context.Context) ([]string, error) {
	xSystems, err := s.store.ListXSystems(ctx)
	if err != nil {
		return nil, err
	}
	if xSystems == nil {
		xSystems = []string{}
	}
	return xSystems, nil
}

// listEntityTypes enumerates the downloadable entity types of one
// x-system: the stems of its *.json files.
func (s *Service) listEntityTypes(ctx context.Context, xSystem string) ([]string, error) {
	filenames, err := s.store.ListEntityTypes(ctx, xSystem)
	if err != nil {
		return nil, err
	}
	entityTypes := []string{}
	for _, name := range filenames {
		if strings.HasSuffix(name, ".json") {
			entityTypes = append(entityTypes, strings.TrimSuffix(name, ".json"))
		}
	}
	return entityTypes, nil
}

// normalizeJSON re-marshals a body that parses as a JSON object or array.
// encoding/json emits map keys sorted, which gives the deterministic
// at-rest form. Returns false for anything else (scalars, invalid JSON),
// in which case the body is stored verbatim.
func normalizeJSON(body []byte) ([]byte, bool) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false
	}
	switch parsed.(type) {
	case map[string]any, []any:
	default:
		return nil, false
	}
	normalized, err := json.Marshal(parsed)
	if err != nil {
		return nil, false
	}
	return normalized, true
}
