package bootstrap

import (
	"context"
	"errors"

	"github.com/bnema/twinview/internal/application/usecase"
	"github.com/bnema/twinview/internal/domain/repository"
	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/twinview/internal/logging"
)

// Journal is the SQLite visit journal: a lazy connection, the async
// recorder the compositor writes to, and the history use case.
type Journal struct {
	DB       *sqlite.LazyDB
	Repo     repository.VisitRepository
	Recorder *usecase.VisitJournal
	Visits   *usecase.ManageVisitsUseCase

	retentionDays int
}

// OpenJournal prepares the journal. The database is opened on first use.
func OpenJournal(cfg *config.Config) (*Journal, error) {
	if cfg == nil || cfg.Database.Path == "" {
		return nil, errors.New("journal: database path is required")
	}
	db := sqlite.NewLazyDB(cfg.Database.Path)
	repo := sqlite.NewLazyVisitRepository(db)
	return &Journal{
		DB:            db,
		Repo:          repo,
		Recorder:      usecase.NewVisitJournal(repo, usecase.DefaultJournalQueue),
		Visits:        usecase.NewManageVisitsUseCase(repo),
		retentionDays: cfg.Database.RetentionDays,
	}, nil
}

// Run prunes expired visits, then writes recorded visits until ctx ends.
func (j *Journal) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "journal")
	if _, err := j.Visits.Prune(ctx, j.retentionDays); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("startup prune failed")
	}
	return j.Recorder.Run(ctx)
}

// Close stops the recorder and closes the database.
func (j *Journal) Close() error {
	j.Recorder.Close()
	return j.DB.Close()
}
