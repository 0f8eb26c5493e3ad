package eventlog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultTimeout bounds each FileStore operation unless overridden with
// WithTimeout. Log I/O must fail rather than hang.
const DefaultTimeout = 5 * time.Second

// FileStore persists events to a flat text file, one record per line. Writes
// are append-only and synced to stable storage before success, so a crash
// mid-write can lose at most the record being written and never corrupts
// earlier records. A single FileStore is safe for concurrent use.
type FileStore struct {
	path    string
	timeout time.Duration

	mu sync.Mutex
}

var _ Store = (*FileStore)(nil)

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithTimeout bounds each store operation with its own timeout in addition
// to whatever deadline the caller's context carries. Zero disables the
// per-operation bound.
func WithTimeout(timeout time.Duration) FileOption {
	return func(s *FileStore) {
		s.timeout = timeout
	}
}

// NewFileStore creates or reuses the log file at path. The parent directory
// is created if missing and the file itself is created empty, so a fresh
// store reads as an empty log rather than a missing resource. A file that
// later disappears surfaces as ErrStoreUnavailable from the operation that
// notices.
func NewFileStore(path string, opts ...FileOption) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrStoreUnavailable)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create directory %s: %v", ErrStoreUnavailable, dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStoreUnavailable, path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %v", ErrStoreUnavailable, path, err)
	}

	s := &FileStore{path: path, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MustNewFileStore is like NewFileStore but panics on error. Use during
// application startup where a missing log location is fatal.
func MustNewFileStore(path string, opts ...FileOption) *FileStore {
	s, err := NewFileStore(path, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Path returns the location of the underlying log file.
func (s *FileStore) Path() string {
	return s.path
}

// Append writes one record and flushes it before returning. The file is
// opened per call so external rotation or removal between operations is
// picked up instead of writing through a stale handle.
func (s *FileStore) Append(ctx context.Context, e Event) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrStoreUnavailable, s.path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(FormatLine(e) + "\n"); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStoreUnavailable, s.path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %v", ErrStoreUnavailable, s.path, err)
	}
	return nil
}

// ReadAll reads every complete, newline-terminated record. An unterminated
// final line is treated as an append in flight and ignored without counting
// as a parse error.
func (s *FileStore) ReadAll(ctx context.Context) (ReadResult, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return ReadResult{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("%w: read %s: %v", ErrStoreUnavailable, s.path, err)
	}

	return parseLog(data), nil
}

// Clear truncates the log file to empty. The operation is irreversible and
// meant for an explicit operator-initiated reset only.
func (s *FileStore) Clear(ctx context.Context) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Truncate(s.path, 0); err != nil {
		return fmt.Errorf("%w: truncate %s: %v", ErrStoreUnavailable, s.path, err)
	}
	return nil
}

func (s *FileStore) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}
