// Package system serves the unauthenticated liveness and metrics endpoints.
package system

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/datadrop/service/internal/response"
	"github.com/datadrop/service/internal/storage"
)

// Metric names for the drop-directory gauges.
const (
	fileCountMetric = "drop_directory_files_count"
	lastModMetric   = "drop_directory_last_modified_timestamp"
)

// Status is the liveness response body.
type Status struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handler holds the system endpoints.
type Handler struct {
	store   storage.Store
	log     *slog.Logger
	version string
}

// NewHandler creates a system Handler.
func NewHandler(store storage.Store, log *slog.Logger, version string) *Handler {
	return &Handler{store: store, log: log, version: version}
}

// Check godoc
//
//	@Summary	Liveness check
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	system.Status
//	@Router		/_system/check [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, Status{Status: "ok", Version: h.version})
}

// Metrics godoc
//
//	@Summary		Drop directory metrics
//	@Description	Per-x-system file counts and newest modification times, in Prometheus text exposition format.
//	@Tags			system
//	@Produce		plain
//	@Success		200
//	@Router			/_system/metrics [get]
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.log.Error("stats scan failed", "error", err)
		response.InternalError(w)
		return
	}

	var fileCountLines, lastModLines []string
	for _, s := range stats {
		label := fmt.Sprintf("directory=%q", s.Name)
		mtime := strconv.FormatFloat(
			float64(s.LastModified.UnixNano())/1e9, 'f', -1, 64)

		fileCountLines = append(fileCountLines,
			fmt.Sprintf("%s{%s} %d", fileCountMetric, label, s.FileCount))
		lastModLines = append(lastModLines,
			fmt.Sprintf("%s{%s} %s", lastModMetric, label, mtime))
	}

	var blocks []string
	if len(fileCountLines) > 0 {
		blocks = append(blocks,
			"# TYPE "+fileCountMetric+" gauge\n"+strings.Join(fileCountLines, "\n"))
	}
	if len(lastModLines) > 0 {
		blocks = append(blocks,
			"# TYPE "+lastModMetric+" gauge\n"+strings.Join(lastModLines, "\n"))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if len(blocks) > 0 {
		_, _ = fmt.Fprint(w, strings.Join(blocks, "\n\n")+"\n")
	}
}
