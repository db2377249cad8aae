package domain

import "strings"

// Agent names a narrative participant. Agents are lower-cased once
// identified so comparisons are case-insensitive.
type Agent string

// Narrator denotes the ground truth: no further belief layer to peel.
const Narrator Agent = "narrator"

// IsNarrator reports whether the agent is the Narrator sentinel.
func (a Agent) IsNarrator() bool {
	return strings.EqualFold(strings.TrimSpace(string(a)), string(Narrator))
}

func (a Agent) String() string {
	return string(a)
}
