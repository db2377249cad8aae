// Package world holds the textual world model the decomposer keeps while it
// walks a story: which agents are where, or who is still in the conversation.
//
// The model is exchanged with the oracle as a single line of text:
//
//	Kitchen: [Alice, Bob], Garden: [], Unknown: [Carol]
//
// Parse(m.String()) reproduces m for every model that passes Validate.
package world

import (
	"errors"
	"fmt"
	"strings"
)

// Well-known keys.
const (
	KeyUnknown           = "Unknown"
	KeyInConversation    = "in_conversation"
	KeyOutOfConversation = "out_of_conversation"
)

// ErrMalformed is returned when text does not follow the model grammar.
var ErrMalformed = errors.New("malformed world model")

// ErrInvariant is returned when a model places an agent under two keys.
var ErrInvariant = errors.New("world model invariant violated")

// Entry is one location (or conversation bucket) and the agents in it.
type Entry struct {
	Key    string
	Agents []string
}

// Model is an ordered mapping from key to an ordered set of agents.
type Model struct {
	Entries []Entry
}

// New returns a model with one empty entry per key, in order.
func New(keys ...string) Model {
	m := Model{Entries: make([]Entry, 0, len(keys))}
	for _, k := range keys {
		m.Entries = append(m.Entries, Entry{Key: k, Agents: []string{}})
	}
	return m
}

// NewLocations returns a location-mode model: one empty entry per location
// followed by Unknown. Names that could not round-trip are dropped.
func NewLocations(locations []string) Model {
	keys := make([]string, 0, len(locations)+1)
	for _, loc := range locations {
		loc = strings.TrimSpace(loc)
		if !validToken(loc, ":") || strings.EqualFold(loc, KeyUnknown) || contains(keys, loc) {
			continue
		}
		keys = append(keys, loc)
	}
	return New(append(keys, KeyUnknown)...)
}

// NewConversation returns a conversational model with the given agents in
// the conversation and nobody out of it.
func NewConversation(participants []string) Model {
	m := New(KeyInConversation, KeyOutOfConversation)
	for _, p := range participants {
		p = strings.TrimSpace(p)
		if !validToken(p, "") || containsFold(m.Entries[0].Agents, p) {
			continue
		}
		m.Entries[0].Agents = append(m.Entries[0].Agents, p)
	}
	return m
}

// Keys returns the keys in order.
func (m Model) Keys() []string {
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Agents returns the agents under key, or nil if the key does not exist.
func (m Model) Agents(key string) []string {
	for _, e := range m.Entries {
		if e.Key == key {
			return append([]string{}, e.Agents...)
		}
	}
	return nil
}

// Locate returns the key an agent is filed under.
func (m Model) Locate(agent string) (string, bool) {
	for _, e := range m.Entries {
		for _, a := range e.Agents {
			if strings.EqualFold(a, agent) {
				return e.Key, true
			}
		}
	}
	return "", false
}

// IsConversational reports whether the model uses the conversation buckets.
func (m Model) IsConversational() bool {
	return len(m.Entries) == 2 &&
		m.Entries[0].Key == KeyInConversation &&
		m.Entries[1].Key == KeyOutOfConversation
}

// Equal reports whether both models have the same entries in the same order.
func (m Model) Equal(other Model) bool {
	if len(m.Entries) != len(other.Entries) {
		return false
	}
	for i := range m.Entries {
		a, b := m.Entries[i], other.Entries[i]
		if a.Key != b.Key || len(a.Agents) != len(b.Agents) {
			return false
		}
		for j := range a.Agents {
			if a.Agents[j] != b.Agents[j] {
				return false
			}
		}
	}
	return true
}

// String renders the model in its canonical single-line form.
func (m Model) String() string {
	var sb strings.Builder
	for i, e := range m.Entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key)
		sb.WriteString(": [")
		sb.WriteString(strings.Join(e.Agents, ", "))
		sb.WriteString("]")
	}
	return sb.String()
}

// Validate checks that keys and agents are well formed and that no agent
// appears twice.
func (m Model) Validate() error {
	if len(m.Entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrMalformed)
	}
	seenKeys := make(map[string]bool, len(m.Entries))
	seenAgents := make(map[string]string)
	for _, e := range m.Entries {
		if !validToken(e.Key, ":") {
			return fmt.Errorf("%w: invalid key %q", ErrMalformed, e.Key)
		}
		if seenKeys[e.Key] {
			return fmt.Errorf("%w: duplicate key %q", ErrMalformed, e.Key)
		}
		seenKeys[e.Key] = true

		for _, a := range e.Agents {
			if !validToken(a, "") {
				return fmt.Errorf("%w: invalid agent %q under %q", ErrMalformed, a, e.Key)
			}
			id := strings.ToLower(a)
			if prev, ok := seenAgents[id]; ok {
				return fmt.Errorf("%w: agent %q under both %q and %q", ErrInvariant, a, prev, e.Key)
			}
			seenAgents[id] = e.Key
		}
	}
	return nil
}

func validToken(s, extra string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return false
	}
	return !strings.ContainsAny(s, "[],\n"+extra)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
