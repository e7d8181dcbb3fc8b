package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamhub/user-service/internal/api/metrics"
	"github.com/streamhub/user-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	deleteTimeout  = 30 * time.Second
)

// CleanupJob asks for a superseded media asset to be removed from storage.
type CleanupJob struct {
	OwnerID string
	URL     string
}

// Dispatcher deletes replaced media assets asynchronously so profile updates
// never wait on the storage provider. Jobs are sharded by owner id, keeping
// per-account deletions ordered.
type Dispatcher struct {
	workers []chan CleanupJob
	storage ports.MediaStorage
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, storage ports.MediaStorage, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan CleanupJob, numWorkers),
		storage: storage,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan CleanupJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a superseded asset to the worker responsible for its owner.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(ownerID, url string) {
	d.workers[d.shardIndex(ownerID)] <- CleanupJob{OwnerID: ownerID, URL: url}
}

// shardIndex maps an owner id deterministically to a worker index.
func (d *Dispatcher) shardIndex(ownerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan CleanupJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			deleteCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
			err := d.storage.Delete(deleteCtx, job.URL)
			cancel()
			if err != nil {
				metrics.MediaCleanupTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("owner_id", job.OwnerID).
					Str("url", job.URL).
					Int("worker_id", id).
					Msg("media cleanup failed")
				continue
			}
			metrics.MediaCleanupTotal.WithLabelValues("ok").Inc()
		}
	}
}
