package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	logFilePerm = 0o600
	logDirPerm  = 0o750
)

// FileWriter appends log lines to a file and rotates it once it grows past
// maxSize. Rotated files are named <base>.<timestamp>; only maxBackups are kept.
type FileWriter struct {
	mu          sync.Mutex
	dir         string
	name        string
	maxSize     int64
	maxBackups  int
	current     *os.File
	currentSize int64
}

// NewFileWriter opens (or creates) dir/name for appending.
func NewFileWriter(dir, name string, maxSizeMB, maxBackups int) (*FileWriter, error) {
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	w := &FileWriter{
		dir:        dir,
		name:       name,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxBackups: maxBackups,
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

// Path returns the active log file path.
func (w *FileWriter) Path() string {
	return filepath.Join(w.dir, w.name)
}

func (w *FileWriter) open() error {
	path := w.Path()
	if info, err := os.Stat(path); err == nil {
		w.currentSize = info.Size()
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	w.current = file
	return nil
}

func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		if err := w.open(); err != nil {
			return 0, err
		}
	}

	if w.currentSize+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.current.Write(p)
	w.currentSize += int64(n)
	return n, err
}

func (w *FileWriter) rotate() error {
	if w.current != nil {
		_ = w.current.Close()
		w.current = nil
	}

	backup := fmt.Sprintf("%s.%s", w.name, time.Now().Format("2006-01-02-15-04-05.000"))
	if err := os.Rename(w.Path(), filepath.Join(w.dir, backup)); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	w.pruneBackups()
	w.currentSize = 0
	return w.open()
}

func (w *FileWriter) pruneBackups() {
	if w.maxBackups <= 0 {
		return
	}
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), w.name+".") {
			continue
		}
		backups = append(backups, entry.Name())
	}
	if len(backups) <= w.maxBackups {
		return
	}

	// Timestamp suffixes sort chronologically.
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-w.maxBackups] {
		_ = os.Remove(filepath.Join(w.dir, name))
	}
}

// Close closes the active file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		return nil
	}
	err := w.current.Close()
	w.current = nil
	return err
}
