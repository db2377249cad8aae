// Package disamb resolves nested container locations in HiToM-style stories.
//
// A story such as "Alice entered the kitchen. The apple is in the green_box.
// ... moved the apple to the red_basket." leaves implicit that green_box and
// red_basket live in the kitchen. Sentences emits "The red_basket is in the
// kitchen." for every such child, so later prompts can reason about
// containment.
package disamb

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	entryPattern = regexp.MustCompile(`\bentered the (\w+)(?:\.|$)`)
	// A mention names the container the cursor location holds.
	mentionPattern = regexp.MustCompile(`\bis in the (\w+)(?:\.|$)`)
	movePattern    = regexp.MustCompile(`\bmoved the \w+ to the (\w+)(?:\.|$)`)
)

// Sentences returns the disambiguation sentences for the given story units,
// in first-discovery order. The first parent recorded for a child wins.
// It is deterministic and makes no oracle calls.
func Sentences(units []string) []string {
	var (
		cursor   string
		order    []string
		parentOf = make(map[string]string)
	)

	record := func(child string) {
		if cursor == "" || child == cursor {
			return
		}
		if _, seen := parentOf[child]; seen {
			return
		}
		parentOf[child] = cursor
		order = append(order, child)
	}

	for _, unit := range units {
		unit = strings.TrimSpace(unit)
		if m := entryPattern.FindStringSubmatch(unit); m != nil {
			cursor = m[1]
		}
		if m := mentionPattern.FindStringSubmatch(unit); m != nil {
			record(m[1])
		}
		if m := movePattern.FindStringSubmatch(unit); m != nil {
			record(m[1])
		}
	}

	out := make([]string, 0, len(order))
	for _, child := range order {
		out = append(out, fmt.Sprintf("The %s is in the %s.", child, parentOf[child]))
	}
	return out
}

// Split breaks a story string into sentence units on periods and newlines,
// dropping empty units. Each unit keeps a trailing period.
func Split(story string) []string {
	fields := strings.FieldsFunc(story, func(r rune) bool {
		return r == '.' || r == '\n'
	})
	units := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		units = append(units, f+".")
	}
	return units
}

// Text joins disambiguation sentences the way prompts embed them.
func Text(sentences []string) string {
	return strings.Join(sentences, "\n ")
}
