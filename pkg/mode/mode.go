// Package mode defines the closed set of story variants the decomposer
// understands and the prompt templates each one carries.
//
// A Mode is fixed when an engine is built. It decides how a story splits
// into units, how kept units are joined back, whether the world model is
// location based or conversational, and which prompt texts are sent.
package mode

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/aretw0/decompose/pkg/domain"
)

// Name identifies a mode variant.
type Name string

const (
	NameHitom   Name = "hitom"
	NameFantom  Name = "fantom"
	NameGeneric Name = "generic"
)

// Key identifies one prompt template.
type Key string

const (
	KeyAgent            Key = "agent"
	KeyMultiwordAgent   Key = "multiword_agent"
	KeySimplify         Key = "simplify"
	KeyKnowledge        Key = "knowledge"
	KeyCompressDecision Key = "compress_decision"
	KeyForcedDecision   Key = "forced_decision"
	KeyWorldSetup       Key = "world_setup"
	KeyWorldGate        Key = "world_gate"
	KeyWorldUpdate      Key = "world_update"
	KeyAnswer           Key = "answer"
	KeyExtract          Key = "extract"
)

// Keys lists every template key a mode must provide.
var Keys = []Key{
	KeyAgent, KeyMultiwordAgent, KeySimplify, KeyKnowledge,
	KeyCompressDecision, KeyForcedDecision, KeyWorldSetup,
	KeyWorldGate, KeyWorldUpdate, KeyAnswer, KeyExtract,
}

// PromptData is the value every template is executed against.
type PromptData struct {
	Story          string
	Unit           string
	Agent          string
	World          string
	Note           string
	Disambiguation string
	Question       string
	Choices        string
	AnswerContext  string
	Response       string
}

// Mode is an immutable variant descriptor. Use Hitom, Fantom or Generic.
type Mode struct {
	name      Name
	delimiter string
	separator string
	templates map[Key]*template.Template
}

// Hitom is the location-based variant for HiToM stories. Units are sentences,
// kept units are joined with ". " and the story's container locations are
// disambiguated before answering.
func Hitom() Mode {
	return build(NameHitom, ".", ". ", map[Key]string{
		KeyKnowledge:   hitomKnowledgePrompt,
		KeyWorldSetup:  setupLocationsPrompt,
		KeyWorldGate:   locationGatePrompt,
		KeyWorldUpdate: hitomUpdatePrompt,
		KeyAnswer:      hitomAnswerPrompt,
		KeyExtract:     hitomExtractPrompt,
	})
}

// Fantom is the conversational variant for FANToM dialogues. Units are
// dialogue lines and the world model tracks who is in the conversation.
func Fantom() Mode {
	return build(NameFantom, "\n", "\n", map[Key]string{
		KeyKnowledge:   fantomKnowledgePrompt,
		KeyWorldSetup:  conversationSetupPrompt,
		KeyWorldGate:   conversationGatePrompt,
		KeyWorldUpdate: fantomUpdatePrompt,
		KeyAnswer:      fantomAnswerPrompt,
		KeyExtract:     fantomExtractPrompt,
	})
}

// Generic splits stories on a caller-chosen delimiter and takes its knowledge
// rules from the task note. An empty delimiter means ".".
func Generic(delimiter string) Mode {
	if delimiter == "" {
		delimiter = "."
	}
	return build(NameGeneric, delimiter, delimiter, map[Key]string{
		KeyKnowledge:   genericKnowledgePrompt,
		KeyWorldSetup:  setupLocationsPrompt,
		KeyWorldGate:   locationGatePrompt,
		KeyWorldUpdate: genericUpdatePrompt,
		KeyAnswer:      genericAnswerPrompt,
		KeyExtract:     genericExtractPrompt,
	})
}

// Parse returns the mode with the given name.
func Parse(name, delimiter string) (Mode, error) {
	switch Name(strings.ToLower(strings.TrimSpace(name))) {
	case NameHitom:
		return Hitom(), nil
	case NameFantom:
		return Fantom(), nil
	case NameGeneric, "":
		return Generic(delimiter), nil
	}
	return Mode{}, fmt.Errorf("%w: %q", domain.ErrUnknownMode, name)
}

func build(name Name, delimiter, separator string, specific map[Key]string) Mode {
	texts := map[Key]string{
		KeyAgent:            agentPrompt,
		KeyMultiwordAgent:   multiwordAgentPrompt,
		KeySimplify:         simplifyPrompt,
		KeyCompressDecision: compressDecisionPrompt,
		KeyForcedDecision:   forcedDecisionPrompt,
	}
	for k, v := range specific {
		texts[k] = v
	}

	m := Mode{
		name:      name,
		delimiter: delimiter,
		separator: separator,
		templates: make(map[Key]*template.Template, len(texts)),
	}
	for k, text := range texts {
		m.templates[k] = template.Must(template.New(string(k)).Option("missingkey=error").Parse(text))
	}
	return m
}

// Name returns the variant name.
func (m Mode) Name() Name { return m.name }

// Delimiter is the string stories are split on.
func (m Mode) Delimiter() string { return m.delimiter }

// Separator joins units in the running prefix and in the filtered story.
func (m Mode) Separator() string { return m.separator }

// Conversational reports whether the world model tracks conversation
// membership instead of locations.
func (m Mode) Conversational() bool { return m.name == NameFantom }

// TracksBeliefs reports whether each layer appends "{agent} believes: " to
// the answer context.
func (m Mode) TracksBeliefs() bool { return m.name == NameFantom }

// Disambiguates reports whether container sentences are computed for the
// story and embedded in knowledge and answer prompts.
func (m Mode) Disambiguates() bool { return m.name == NameHitom }

// Split breaks a story into trimmed, non-empty units.
func (m Mode) Split(story string) []string {
	parts := strings.Split(story, m.delimiter)
	units := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			units = append(units, p)
		}
	}
	return units
}

// Join rebuilds a story from kept units. The delimiter is always appended,
// so a story with no kept units is the bare delimiter.
func (m Mode) Join(units []string) string {
	return strings.Join(units, m.separator) + m.delimiter
}

// Render executes the template for key.
func (m Mode) Render(key Key, data PromptData) (string, error) {
	tmpl, ok := m.templates[key]
	if !ok {
		return "", fmt.Errorf("mode %s has no template %q", m.name, key)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering template %q: %w", key, err)
	}
	return buf.String(), nil
}

// Override returns a copy of m with some templates replaced. Unknown keys and
// texts that fail to parse are errors; m itself is never modified.
func (m Mode) Override(texts map[Key]string) (Mode, error) {
	out := m
	out.templates = make(map[Key]*template.Template, len(m.templates))
	for k, v := range m.templates {
		out.templates[k] = v
	}

	keys := make([]string, 0, len(texts))
	for k := range texts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := Key(k)
		if _, ok := m.templates[key]; !ok {
			return Mode{}, fmt.Errorf("unknown template key %q", key)
		}
		tmpl, err := template.New(k).Option("missingkey=error").Parse(texts[key])
		if err != nil {
			return Mode{}, fmt.Errorf("parsing template %q: %w", key, err)
		}
		out.templates[key] = tmpl
	}
	return out, nil
}
