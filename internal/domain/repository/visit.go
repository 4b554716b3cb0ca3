// Package repository declares persistence contracts for domain entities.
package repository

import (
	"context"
	"time"

	"github.com/bnema/twinview/internal/domain/entity"
)

//go:generate mockery --name=VisitRepository --output=mocks --outpkg=mocks --with-expecter

// VisitRepository persists the visit journal.
type VisitRepository interface {
	// Save appends a visit and fills in its ID.
	Save(ctx context.Context, visit *entity.Visit) error

	// GetRecent returns the newest visits first.
	GetRecent(ctx context.Context, limit, offset int) ([]*entity.Visit, error)

	// GetBySession returns a session's visits in load order.
	GetBySession(ctx context.Context, sessionID string) ([]*entity.Visit, error)

	// DeleteOlderThan removes visits recorded before the given time.
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)

	// DeleteAll removes every visit.
	DeleteAll(ctx context.Context) error
}
