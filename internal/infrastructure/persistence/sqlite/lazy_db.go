package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/twinview/internal/logging"
)

// LazyDB opens the database on first use, so the backend starts without
// waiting for the SQLite build to compile and migrations to run.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	closed bool
	once   sync.Once
	mu     sync.RWMutex
}

// ErrDBClosed is returned by DB after Close.
var ErrDBClosed = errors.New("database closed")

// NewLazyDB creates a lazy database handle for dbPath.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the connection, opening it on the first call.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		db, err := NewConnection(ctx, l.dbPath)
		if err != nil {
			logging.FromContext(ctx).Error().Err(err).Str("path", l.dbPath).Msg("failed to open visit journal")
		}
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrDBClosed
	}
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the connection if it was opened.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// IsInitialized reports whether the connection has been opened.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}
