package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/decompose/pkg/domain"
)

// Kind names a benchmark.
type Kind string

const (
	KindHitom  Kind = "hitom"
	KindFantom Kind = "fantom"
)

// ParseKind validates a benchmark name.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindHitom, KindFantom:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownDataset, name)
}

// FANToM full contexts run past bufio's default token size.
const maxLine = 16 << 20

// decodeLines decodes every non-blank line of r into a fresh T and hands it
// to keep together with its line number.
func decodeLines[T any](r io.Reader, logger *slog.Logger, keep func(line int, v T)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			logger.Warn("Skipping malformed line", "line", line, "error", err)
			continue
		}
		keep(line, v)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}
	return nil
}
