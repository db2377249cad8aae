package oracle

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// ErrNoScript is returned when no rule matches a prompt and no default is set.
var ErrNoScript = errors.New("no scripted response")

type rule struct {
	match     func(prompt string) bool
	respond   func(prompt string) string
	responses []string
	next      int
	err       error
}

// Scripted is a deterministic oracle. Rules are tried in the order they were
// added; the first match answers. A rule with several responses hands them
// out in order and then keeps repeating the last one.
type Scripted struct {
	mu       sync.Mutex
	rules    []*rule
	fallback *string
	calls    []string
}

// NewScripted returns an oracle with no rules.
func NewScripted() *Scripted {
	return &Scripted{}
}

// On answers prompts containing substr.
func (s *Scripted) On(substr string, responses ...string) *Scripted {
	return s.add(func(p string) bool { return strings.Contains(p, substr) }, responses, nil)
}

// OnRegexp answers prompts matching the expression.
func (s *Scripted) OnRegexp(expr string, responses ...string) *Scripted {
	re := regexp.MustCompile(expr)
	return s.add(re.MatchString, responses, nil)
}

// OnFunc answers prompts accepted by match.
func (s *Scripted) OnFunc(match func(prompt string) bool, responses ...string) *Scripted {
	return s.add(match, responses, nil)
}

// Handle answers prompts accepted by match with respond(prompt).
func (s *Scripted) Handle(match func(prompt string) bool, respond func(prompt string) string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, &rule{match: match, respond: respond})
	return s
}

// FailOn makes prompts containing substr return err.
func (s *Scripted) FailOn(substr string, err error) *Scripted {
	return s.add(func(p string) bool { return strings.Contains(p, substr) }, nil, err)
}

// Default answers every prompt no rule matched.
func (s *Scripted) Default(response string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = &response
	return s
}

func (s *Scripted) add(match func(string) bool, responses []string, err error) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, &rule{match: match, responses: responses, err: err})
	return s
}

// Respond implements ports.Oracle.
func (s *Scripted) Respond(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, prompt)

	for _, r := range s.rules {
		if !r.match(prompt) {
			continue
		}
		if r.err != nil {
			return "", r.err
		}
		if r.respond != nil {
			return r.respond(prompt), nil
		}
		if len(r.responses) == 0 {
			return "", nil
		}
		resp := r.responses[r.next]
		if r.next < len(r.responses)-1 {
			r.next++
		}
		return resp, nil
	}

	if s.fallback != nil {
		return *s.fallback, nil
	}
	return "", fmt.Errorf("%w for prompt %q", ErrNoScript, truncate(prompt, 80))
}

// Calls returns every prompt received so far, in order.
func (s *Scripted) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.calls...)
}

// CallCount returns the number of prompts received.
func (s *Scripted) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// CountMatching returns how many received prompts contain substr.
func (s *Scripted) CountMatching(substr string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if strings.Contains(c, substr) {
			n++
		}
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
