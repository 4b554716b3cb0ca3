package sqlite

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/domain/repository"
)

// LazyVisitRepository opens the database on the first repository call.
type LazyVisitRepository struct {
	db      *LazyDB
	repo    repository.VisitRepository
	once    sync.Once
	initErr error
}

// NewLazyVisitRepository wraps db in a visit repository.
func NewLazyVisitRepository(db *LazyDB) repository.VisitRepository {
	return &LazyVisitRepository{db: db}
}

func (r *LazyVisitRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.db.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewVisitRepository(db)
	})
	return r.initErr
}

func (r *LazyVisitRepository) Save(ctx context.Context, visit *entity.Visit) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, visit)
}

func (r *LazyVisitRepository) GetRecent(ctx context.Context, limit, offset int) ([]*entity.Visit, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.GetRecent(ctx, limit, offset)
}

func (r *LazyVisitRepository) GetBySession(ctx context.Context, sessionID string) ([]*entity.Visit, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.GetBySession(ctx, sessionID)
}

func (r *LazyVisitRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	if err := r.init(ctx); err != nil {
		return 0, err
	}
	return r.repo.DeleteOlderThan(ctx, before)
}

func (r *LazyVisitRepository) DeleteAll(ctx context.Context) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.DeleteAll(ctx)
}
