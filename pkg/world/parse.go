package world

import (
	"fmt"
	"strings"
)

// Parse reads a model from its single-line form. Surrounding whitespace is
// ignored; anything else that does not follow the grammar is an error.
// The parsed model is validated before it is returned.
func Parse(text string) (Model, error) {
	rest := strings.TrimSpace(text)
	if rest == "" {
		return Model{}, fmt.Errorf("%w: empty", ErrMalformed)
	}

	var m Model
	for {
		colon := strings.Index(rest, ":")
		if colon < 0 {
			return Model{}, fmt.Errorf("%w: missing ':' in %q", ErrMalformed, rest)
		}
		key := strings.TrimSpace(rest[:colon])
		rest = strings.TrimSpace(rest[colon+1:])

		if !strings.HasPrefix(rest, "[") {
			return Model{}, fmt.Errorf("%w: missing '[' after %q", ErrMalformed, key)
		}
		end := strings.Index(rest, "]")
		if end < 0 {
			return Model{}, fmt.Errorf("%w: unterminated list for %q", ErrMalformed, key)
		}
		m.Entries = append(m.Entries, Entry{Key: key, Agents: splitAgents(rest[1:end])})
		rest = strings.TrimSpace(rest[end+1:])

		if rest == "" {
			break
		}
		if !strings.HasPrefix(rest, ",") {
			return Model{}, fmt.Errorf("%w: unexpected text %q", ErrMalformed, rest)
		}
		rest = strings.TrimSpace(rest[1:])
	}

	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Find returns the first model that parses out of a free-form oracle
// response: the whole text is tried first, then each line on its own.
// A leading "World State:" label is ignored.
func Find(text string) (Model, error) {
	m, err := Parse(stripLabel(text))
	if err == nil {
		return m, nil
	}
	firstErr := err
	for _, line := range strings.Split(text, "\n") {
		line = stripLabel(line)
		if line == "" {
			continue
		}
		if m, err := Parse(line); err == nil {
			return m, nil
		}
	}
	return Model{}, firstErr
}

const stateLabel = "world state:"

func stripLabel(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(stateLabel) && strings.EqualFold(s[:len(stateLabel)], stateLabel) {
		s = strings.TrimSpace(s[len(stateLabel):])
	}
	return s
}

func splitAgents(list string) []string {
	agents := []string{}
	for _, a := range strings.Split(list, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			agents = append(agents, a)
		}
	}
	return agents
}
