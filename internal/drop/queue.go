package drop

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/datadrop/service/internal/storage"
)

// writeTask is one deferred sink write.
type writeTask struct {
	xSystem  string
	filename string
	content  []byte
}

// Queue decouples upload responses from storage latency. Validated payloads
// are handed off to a bounded channel drained by a worker pool; the client
// receives its 202 before the write commits. A write that fails here cannot
// be reported to the original request anymore, so it is logged instead.
type Queue struct {
	store   storage.Store
	log     *slog.Logger
	tasks   chan writeTask
	workers int
	wg      sync.WaitGroup
}

// NewQueue returns a queue with the given worker-pool size and buffer.
func NewQueue(store storage.Store, log *slog.Logger, workers, buffer int) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		store:   store,
		log:     log,
		tasks:   make(chan writeTask, buffer),
		workers: workers,
	}
}

// Run starts the worker pool and blocks until ctx is cancelled and all
// already-accepted tasks have been written.
func (q *Queue) Run(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
	q.wg.Wait()
}

// Enqueue hands a write off to the pool. Blocks when the buffer is full,
// which backpressures uploads instead of growing memory without bound.
func (q *Queue) Enqueue(xSystem, filename string, content []byte) {
	q.tasks <- writeTask{xSystem: xSystem, filename: filename, content: content}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case task := <-q.tasks:
			q.write(task)
		case <-ctx.Done():
			// Drain what was already accepted, then exit.
			for {
				select {
				case task := <-q.tasks:
					q.write(task)
				default:
					return
				}
			}
		}
	}
}

func (q *Queue) write(task writeTask) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := q.store.Put(ctx, task.xSystem, task.filename, task.content); err != nil {
		q.log.Error("deferred write failed",
			"x_system", task.xSystem,
			"filename", task.filename,
			"error", err,
		)
	}
}
