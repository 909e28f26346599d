package review

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/reelsmaxx/reelview/pkg/reelview/models"
	"github.com/reelsmaxx/reelview/pkg/reelview/store"
)

type writeAction int

const (
	actionCreate writeAction = iota + 1
	actionUpdate
	actionDelete
)

type writeJob struct {
	action writeAction
	video  models.Video
	id     string
	fields map[string]interface{}
}

// Dispatcher forwards board mutations to the store asynchronously.
// Writes are fire-and-forget: a failed write is logged with the item
// id and otherwise dropped. There is no retry and no rollback of the
// optimistic board state.
type Dispatcher struct {
	store  store.Store
	logger *zap.Logger
	ch     chan writeJob
	stopCh chan struct{}
}

// NewDispatcher creates a dispatcher with the given queue capacity.
func NewDispatcher(s store.Store, logger *zap.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &Dispatcher{
		store:  s,
		logger: logger,
		ch:     make(chan writeJob, queueSize),
		stopCh: make(chan struct{}),
	}
}

// Start launches the worker goroutines and returns a stop function
// that waits briefly for the queue to drain.
func (d *Dispatcher) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 4
	}
	for i := 0; i < workers; i++ {
		go d.run()
	}
	return func(ctx context.Context) error {
		close(d.stopCh)
		deadline := time.After(2 * time.Second)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-deadline:
				return nil
			default:
				if len(d.ch) == 0 {
					return nil
				}
				time.Sleep(20 * time.Millisecond)
			}
		}
	}
}

func (d *Dispatcher) run() {
	for {
		select {
		case job := <-d.ch:
			d.execute(job)
		case <-d.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case job := <-d.ch:
					d.execute(job)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) execute(job writeJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch job.action {
	case actionCreate:
		v := job.video
		if err := d.store.Create(ctx, &v); err != nil {
			d.logger.Warn("create not persisted", zap.String("id", v.ID), zap.Error(err))
		}
	case actionUpdate:
		if err := d.store.UpdateFields(ctx, job.id, job.fields); err != nil {
			d.logger.Warn("update not persisted", zap.String("id", job.id), zap.Error(err))
		}
	case actionDelete:
		if err := d.store.Delete(ctx, job.id); err != nil {
			d.logger.Warn("delete not persisted", zap.String("id", job.id), zap.Error(err))
		}
	}
}

func (d *Dispatcher) enqueue(job writeJob) {
	select {
	case d.ch <- job:
	default:
		// Queue full: the write is dropped, consistent with the
		// fire-and-forget contract. Log loudly since this means
		// the view has diverged from the store.
		d.logger.Error("write queue full, dropping job", zap.String("id", job.id))
	}
}

// EnqueueCreate schedules an insert for the given video.
func (d *Dispatcher) EnqueueCreate(v models.Video) {
	d.enqueue(writeJob{action: actionCreate, video: v, id: v.ID})
}

// EnqueueUpdate schedules a partial update carrying only the supplied fields.
func (d *Dispatcher) EnqueueUpdate(id string, fields map[string]interface{}) {
	d.enqueue(writeJob{action: actionUpdate, id: id, fields: fields})
}

// EnqueueDelete schedules a row delete.
func (d *Dispatcher) EnqueueDelete(id string) {
	d.enqueue(writeJob{action: actionDelete, id: id})
}
