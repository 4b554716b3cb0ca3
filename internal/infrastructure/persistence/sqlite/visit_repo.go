package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/domain/repository"
	"github.com/bnema/twinview/internal/logging"
)

const logURLMaxLen = 60

const (
	insertVisit = `INSERT INTO visits (session_id, role, url, visited_at) VALUES (?, ?, ?, ?)`
	selectRecent = `SELECT id, session_id, role, url, visited_at FROM visits
		ORDER BY visited_at DESC, id DESC LIMIT ? OFFSET ?`
	selectSession = `SELECT id, session_id, role, url, visited_at FROM visits
		WHERE session_id = ? ORDER BY id ASC`
	deleteBefore = `DELETE FROM visits WHERE visited_at < ?`
	deleteAll    = `DELETE FROM visits`
)

type visitRepo struct {
	db *sql.DB
}

// NewVisitRepository creates a SQLite-backed visit repository.
func NewVisitRepository(db *sql.DB) repository.VisitRepository {
	return &visitRepo{db: db}
}

func (r *visitRepo) Save(ctx context.Context, visit *entity.Visit) error {
	logging.FromContext(ctx).Debug().
		Str("url", logging.TruncateURL(visit.URL, logURLMaxLen)).
		Str("role", string(visit.Role)).
		Msg("saving visit")

	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, insertVisit,
		visit.SessionID, string(visit.Role), visit.URL, visit.VisitedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("visit id: %w", err)
	}
	visit.ID = id
	return nil
}

func (r *visitRepo) GetRecent(ctx context.Context, limit, offset int) ([]*entity.Visit, error) {
	if limit <= 0 {
		return []*entity.Visit{}, nil
	}
	return r.query(ctx, selectRecent, limit, max(offset, 0))
}

func (r *visitRepo) GetBySession(ctx context.Context, sessionID string) ([]*entity.Visit, error) {
	return r.query(ctx, selectSession, sessionID)
}

func (r *visitRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteBefore, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete visits: %w", err)
	}
	return res.RowsAffected()
}

func (r *visitRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAll); err != nil {
		return fmt.Errorf("delete visits: %w", err)
	}
	return nil
}

func (r *visitRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Visit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	visits := make([]*entity.Visit, 0)
	for rows.Next() {
		var (
			v         entity.Visit
			role      string
			visitedAt int64
		)
		if err := rows.Scan(&v.ID, &v.SessionID, &role, &v.URL, &visitedAt); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.Role = entity.Role(role)
		v.VisitedAt = time.UnixMilli(visitedAt)
		visits = append(visits, &v)
	}
	return visits, rows.Err()
}
