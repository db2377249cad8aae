package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/decompose/pkg/mode"
	"github.com/aretw0/loam"
)

// PromptMetadata is the frontmatter of a prompt override document.
//
//	---
//	key: knowledge
//	mode: hitom
//	---
//	This is a given story: {{.Story}} ...
//
// Key defaults to the file name. An empty Mode applies to every mode.
type PromptMetadata struct {
	Key  string `json:"key" mapstructure:"key"`
	Mode string `json:"mode" mapstructure:"mode"`
}

// PromptLoader reads prompt template overrides from a Loam repository.
type PromptLoader struct {
	Repo *loam.TypedRepository[PromptMetadata]
}

// New creates a new Loam prompt adapter.
func New(repo *loam.TypedRepository[PromptMetadata]) *PromptLoader {
	return &PromptLoader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*PromptLoader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[PromptMetadata](repo)), nil
}

// Overrides returns the template texts that apply to the named mode.
// Two documents claiming the same key for the same mode are an error.
func (l *PromptLoader) Overrides(ctx context.Context, name mode.Name) (map[mode.Key]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	out := make(map[mode.Key]string)
	seen := make(map[mode.Key]string)
	for _, doc := range docs {
		if doc.Data.Mode != "" && !strings.EqualFold(doc.Data.Mode, string(name)) {
			continue
		}

		key := doc.Data.Key
		if key == "" {
			key = filepath.Base(trimExtension(doc.ID))
		}
		k := mode.Key(key)

		if existing, ok := seen[k]; ok {
			return nil, fmt.Errorf("collision detected: prompt '%s' is defined in both '%s' and '%s'", k, existing, doc.ID)
		}
		seen[k] = doc.ID
		out[k] = strings.TrimSpace(doc.Content)
	}
	return out, nil
}

// Apply loads the overrides for m and returns the customized mode.
func (l *PromptLoader) Apply(ctx context.Context, m mode.Mode) (mode.Mode, error) {
	texts, err := l.Overrides(ctx, m.Name())
	if err != nil {
		return mode.Mode{}, err
	}
	if len(texts) == 0 {
		return m, nil
	}
	return m.Override(texts)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
