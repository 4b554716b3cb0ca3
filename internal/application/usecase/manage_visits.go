package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/domain/repository"
	"github.com/bnema/twinview/internal/logging"
)

// ManageVisitsUseCase reads and prunes the visit journal.
type ManageVisitsUseCase struct {
	repo repository.VisitRepository
	now  func() time.Time
}

// NewManageVisitsUseCase creates the use case.
func NewManageVisitsUseCase(repo repository.VisitRepository) *ManageVisitsUseCase {
	return &ManageVisitsUseCase{repo: repo, now: time.Now}
}

// ListInput selects visits to show.
type ListInput struct {
	// SessionID restricts the list to one session, in load order.
	SessionID string
	Limit     int
	Offset    int
}

// List returns visits, newest first unless a session is selected.
func (uc *ManageVisitsUseCase) List(ctx context.Context, input ListInput) ([]*entity.Visit, error) {
	if input.SessionID != "" {
		visits, err := uc.repo.GetBySession(ctx, input.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to list session visits: %w", err)
		}
		return visits, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	visits, err := uc.repo.GetRecent(ctx, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}

// Prune deletes visits older than retentionDays. Zero or less keeps everything.
func (uc *ManageVisitsUseCase) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := uc.now().AddDate(0, 0, -retentionDays)
	n, err := uc.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune visits: %w", err)
	}
	if n > 0 {
		logging.FromContext(ctx).Info().Int64("deleted", n).Int("retention_days", retentionDays).Msg("pruned visit journal")
	}
	return n, nil
}

// Clear deletes the whole journal.
func (uc *ManageVisitsUseCase) Clear(ctx context.Context) error {
	if err := uc.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear visits: %w", err)
	}
	return nil
}
