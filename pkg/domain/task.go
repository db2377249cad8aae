package domain

import (
	"fmt"
	"strings"
)

// Choice is one labelled answer option.
type Choice struct {
	Label string `json:"label" mapstructure:"label"`
	Text  string `json:"text" mapstructure:"text"`
}

// String renders the choice the way FANToM presents it: "(a) text".
func (c Choice) String() string {
	return fmt.Sprintf("(%s) %s", c.Label, c.Text)
}

// FormatChoices joins choices one per line.
func FormatChoices(choices []Choice) string {
	lines := make([]string, 0, len(choices))
	for _, c := range choices {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}

// Task is a single story + question pair handed to the engine.
type Task struct {
	// ID correlates logs and hooks; generated when empty.
	ID string `json:"id,omitempty" mapstructure:"id"`

	Story    string `json:"story" mapstructure:"story"`
	Question string `json:"question" mapstructure:"question"`

	// Choices is the prompt-facing rendering of the options.
	Choices string `json:"choices" mapstructure:"choices"`

	// Note carries caller rules; in generic mode it fills the knowledge rule slot.
	Note string `json:"note,omitempty" mapstructure:"note"`

	// MaxRecursion caps the number of peeled layers. Zero means unbounded.
	MaxRecursion int `json:"max_recursion,omitempty" mapstructure:"max_recursion"`
}

// Result is the outcome of a task.
type Result struct {
	TaskID string `json:"task_id"`

	// Label is the normalized option label chosen by the oracle.
	Label string `json:"label"`

	// Reasoning is the free-form answer the label was extracted from.
	Reasoning string `json:"reasoning"`

	// Agent is the perspective the final answer was produced from.
	Agent Agent `json:"agent"`

	Layers      []Layer `json:"layers"`
	OracleCalls int     `json:"oracle_calls"`

	// Truncated is set when the recursion budget cut the descent short.
	Truncated bool `json:"truncated,omitempty"`
}
