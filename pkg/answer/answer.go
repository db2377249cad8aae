// Package answer turns free-form oracle replies into decisions and labels.
//
// Every function is pure. The decomposer runs them in sequence, one per
// stage, so a reply that fails one parser falls through to the next prompt
// rather than to an error.
package answer

import (
	"regexp"
	"strings"
	"unicode"
)

// Marker separates reasoning from the final answer in oracle replies.
const Marker = "Answer:"

var decisionToken = regexp.MustCompile(`Answer: (\w+)`)

// Normalize drops everything up to and including the first "Answer:" marker,
// lower-cases, trims whitespace and strips trailing '.' and '*'. Leading
// punctuation is kept. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if idx := strings.Index(s, Marker); idx >= 0 {
		s = s[idx+len(Marker):]
	}
	s = strings.ToLower(s)
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '.' || r == '*'
	})
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// IsCorrect reports whether a response selects the choice with the given
// letter: the normalized response is the letter, starts with the letter
// followed by one of ") . : ,", or contains "(letter)".
func IsCorrect(response, letter string) bool {
	r := Normalize(response)
	l := strings.ToLower(strings.TrimSpace(letter))
	if l == "" || r == "" {
		return false
	}
	if r == l {
		return true
	}
	for _, sep := range []string{")", ".", ":", ","} {
		if strings.HasPrefix(r, l+sep) {
			return true
		}
	}
	return strings.Contains(r, "("+l+")")
}

// DecisionToken returns the word following a literal "Answer: " marker,
// lower-cased with trailing periods removed.
func DecisionToken(text string) (string, bool) {
	m := decisionToken.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToLower(strings.Trim(m[1], ".")), true
}

// YesNo reports the decision carried by a short reply. ok is false unless the
// cleaned reply is exactly "yes" or "no".
func YesNo(text string) (yes bool, ok bool) {
	switch Clean(text) {
	case "yes":
		return true, true
	case "no":
		return false, true
	}
	return false, false
}

// Clean trims whitespace, strips surrounding periods and lower-cases.
// It is the cleanup applied to agent names, gate replies and labels.
func Clean(text string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(text), "."))
}

// Label is the cleanup applied to the final selection reply.
func Label(text string) string {
	return strings.TrimSpace(Clean(text))
}
