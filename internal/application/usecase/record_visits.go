// Package usecase holds application operations over the domain repositories.
package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bnema/twinview/internal/application/port"
	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/domain/repository"
	"github.com/bnema/twinview/internal/logging"
)

// DefaultJournalQueue bounds visits waiting to be written.
const DefaultJournalQueue = 256

// VisitJournal records surface loads from its own goroutine. RecordVisit
// never blocks: when the queue is full the visit is dropped.
type VisitJournal struct {
	repo    repository.VisitRepository
	queue   chan entity.Visit
	dropped atomic.Int64

	closeOnce sync.Once
	closed    chan struct{}
}

var _ port.VisitRecorder = (*VisitJournal)(nil)

// NewVisitJournal creates a journal. size <= 0 uses DefaultJournalQueue.
func NewVisitJournal(repo repository.VisitRepository, size int) *VisitJournal {
	if size <= 0 {
		size = DefaultJournalQueue
	}
	return &VisitJournal{
		repo:   repo,
		queue:  make(chan entity.Visit, size),
		closed: make(chan struct{}),
	}
}

// RecordVisit queues a visit.
func (j *VisitJournal) RecordVisit(ctx context.Context, visit entity.Visit) {
	select {
	case <-j.closed:
		return
	default:
	}
	select {
	case j.queue <- visit:
	default:
		j.dropped.Add(1)
		logging.FromContext(ctx).Warn().
			Str("url", logging.TruncateURL(visit.URL, 60)).
			Msg("visit journal queue full, dropping visit")
	}
}

// Dropped counts visits lost to a full queue.
func (j *VisitJournal) Dropped() int64 {
	return j.dropped.Load()
}

// Run writes queued visits until ctx is done or Close is called, then
// flushes what is already queued.
func (j *VisitJournal) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "journal")
	for {
		select {
		case v := <-j.queue:
			j.write(ctx, v)
		case <-ctx.Done():
			j.flush(context.WithoutCancel(ctx))
			return nil
		case <-j.closed:
			j.flush(ctx)
			return nil
		}
	}
}

// Close stops Run after it flushes.
func (j *VisitJournal) Close() {
	j.closeOnce.Do(func() { close(j.closed) })
}

func (j *VisitJournal) flush(ctx context.Context) {
	for {
		select {
		case v := <-j.queue:
			j.write(ctx, v)
		default:
			return
		}
	}
}

func (j *VisitJournal) write(ctx context.Context, v entity.Visit) {
	if err := j.repo.Save(ctx, &v); err != nil {
		logging.FromContext(ctx).Warn().Err(err).
			Str("url", logging.TruncateURL(v.URL, 60)).
			Msg("failed to save visit")
	}
}
