package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/decompose/pkg/ports"
)

// Row is one line of the result log. ID and Source together identify the
// entry; HiToM line numbers restart in each source file.
type Row struct {
	ID             int    `json:"id"`
	Source         string `json:"source,omitempty"`
	Question       string `json:"question"`
	Choices        string `json:"choices,omitempty"`
	CorrectAnswer  string `json:"correct_answer"`
	ReturnedAnswer string `json:"returned_answer"`
	IsCorrect      bool   `json:"is_correct"`
	Error          string `json:"error,omitempty"`
}

// Sink receives finished rows. Implementations must be safe for concurrent
// use.
type Sink interface {
	Write(ctx context.Context, row Row) error
}

// FileSink appends rows as JSON lines to a file.
type FileSink struct {
	Path string

	mu      sync.Mutex
	locker  ports.DistributedLocker
	lockKey string
}

// SinkOption configures a FileSink.
type SinkOption func(*FileSink)

// WithLocker serializes appends across processes sharing the file.
func WithLocker(locker ports.DistributedLocker, key string) SinkOption {
	return func(s *FileSink) {
		s.locker = locker
		s.lockKey = key
	}
}

// LogPath builds results/{dataset}_{method}_{n}_{timestamp}.jsonl.
func LogPath(dir, dataset, method string, n int, now time.Time) string {
	name := fmt.Sprintf("%s_%s_%d_%s.jsonl", dataset, method, n, now.Format("20060102_150405"))
	return filepath.Join(dir, name)
}

// NewFileSink creates the parent directory of path.
func NewFileSink(path string, opts ...SinkOption) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to ensure results directory: %w", err)
	}
	s := &FileSink{Path: path}
	for _, opt := range opts {
		opt(s)
	}
	if s.lockKey == "" {
		s.lockKey = filepath.Base(path)
	}
	return s, nil
}

// Write appends one row.
func (s *FileSink) Write(ctx context.Context, row Row) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, s.lockKey, 10*time.Second)
		if err != nil {
			return fmt.Errorf("failed to lock result log: %w", err)
		}
		defer func() { _ = unlock(context.WithoutCancel(ctx)) }()
	}

	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open result log: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append row: %w", err)
	}
	return f.Close()
}

// ReadRows loads a result log, e.g. to re-render a report.
func ReadRows(path string) ([]Row, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []Row
	dec := json.NewDecoder(bytes.NewReader(raw))
	for dec.More() {
		var r Row
		if err := dec.Decode(&r); err != nil {
			return rows, fmt.Errorf("failed to decode row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}
