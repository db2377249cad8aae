package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/decompose/internal/logging"
)

// Descriptor classifies a HiToM problem.
type Descriptor struct {
	Order  int `json:"order"`
	Length int `json:"length"`
}

// HitomEntry is one HiToM problem.
type HitomEntry struct {
	ID         int        `json:"id"`
	Story      []string   `json:"story"`
	Question   string     `json:"question"`
	Choices    []string   `json:"choices"`
	Answer     string     `json:"answer"`
	Descriptor Descriptor `json:"descriptor"`
	Note       string     `json:"note"`

	// Tell is set for entries of the "tell" file.
	Tell bool `json:"tell"`
}

// AnswerText is the answer without its option letter: "A. green_box"
// yields "green_box".
func (e HitomEntry) AnswerText() string {
	fields := strings.Fields(e.Answer)
	if len(fields) < 2 {
		return strings.TrimSpace(e.Answer)
	}
	return strings.TrimSpace(fields[1])
}

// ExpectedLabel maps the answer text back to its lower-cased option letter.
// Multi-word letters fall back to "a".
func (e HitomEntry) ExpectedLabel() (string, error) {
	want := e.AnswerText()
	for _, c := range e.Choices {
		letter, text, ok := strings.Cut(c, ". ")
		if !ok || text != want {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(strings.Trim(letter, ".")))
		if len(strings.Split(label, " ")) > 1 {
			label = "a"
		}
		return label, nil
	}
	return "", fmt.Errorf("answer %q matches no choice of entry %d", want, e.ID)
}

// StoryText joins the story lines.
func (e HitomEntry) StoryText() string {
	return strings.Join(e.Story, "\n")
}

// ChoicesText joins the choices one per line.
func (e HitomEntry) ChoicesText() string {
	return strings.Join(e.Choices, "\n")
}

// ParseHitom reads HiToM entries from r, marking each with tell.
func ParseHitom(r io.Reader, tell bool, logger *slog.Logger) ([]HitomEntry, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var out []HitomEntry
	err := decodeLines(r, logger, func(line int, e HitomEntry) {
		e.ID = line
		e.Tell = tell
		out = append(out, e)
	})
	return out, err
}

// LoadHitom reads the tell and no-tell files. Either path may be empty.
func LoadHitom(tellPath, noTellPath string, logger *slog.Logger) ([]HitomEntry, error) {
	var all []HitomEntry
	for _, src := range []struct {
		path string
		tell bool
	}{{tellPath, true}, {noTellPath, false}} {
		if src.path == "" {
			continue
		}
		f, err := os.Open(src.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open hitom file: %w", err)
		}
		entries, err := ParseHitom(f, src.tell, logger)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.path, err)
		}
		all = append(all, entries...)
	}
	return all, nil
}

// Partition groups HiToM entries for sampling and reporting.
type Partition struct {
	Order  int
	Length int
	Tell   bool
}

func (p Partition) String() string {
	kind := "no_tell"
	if p.Tell {
		kind = "tell"
	}
	return fmt.Sprintf("order=%d length=%d %s", p.Order, p.Length, kind)
}

// PartitionHitom groups entries by order, length and tell. Order 0 entries
// are excluded.
func PartitionHitom(entries []HitomEntry) map[Partition][]HitomEntry {
	parts := make(map[Partition][]HitomEntry)
	for _, e := range entries {
		if e.Descriptor.Order == 0 {
			continue
		}
		p := Partition{Order: e.Descriptor.Order, Length: e.Descriptor.Length, Tell: e.Tell}
		parts[p] = append(parts[p], e)
	}
	return parts
}

// SampleHitom draws n/len(parts) entries at random from every partition.
// n <= 0 selects everything. Partitions are visited in a fixed order so a
// seeded rng reproduces the selection.
func SampleHitom(parts map[Partition][]HitomEntry, n int, rng *rand.Rand) []HitomEntry {
	keys := make([]Partition, 0, len(parts))
	for p := range parts {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if a.Length != b.Length {
			return a.Length < b.Length
		}
		return !a.Tell && b.Tell
	})

	var out []HitomEntry
	if n <= 0 || len(keys) == 0 {
		for _, p := range keys {
			out = append(out, parts[p]...)
		}
		return out
	}

	per := n / len(keys)
	for _, p := range keys {
		entries := parts[p]
		k := min(per, len(entries))
		for _, i := range rng.Perm(len(entries))[:k] {
			out = append(out, entries[i])
		}
	}
	return out
}
