package world_test

import (
	"testing"

	"github.com/aretw0/decompose/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_String(t *testing.T) {
	m := world.NewLocations([]string{"Kitchen", "Garden"})
	assert.Equal(t, "Kitchen: [], Garden: [], Unknown: []", m.String())

	c := world.NewConversation([]string{"Alice", " Bob ", "Alice"})
	assert.Equal(t, "in_conversation: [Alice, Bob], out_of_conversation: []", c.String())
	assert.True(t, c.IsConversational())
	assert.False(t, m.IsConversational())
}

func TestParse_RoundTrip(t *testing.T) {
	models := []world.Model{
		world.New("Unknown"),
		{Entries: []world.Entry{
			{Key: "Loc", Agents: []string{"A", "B"}},
			{Key: "Unknown", Agents: []string{}},
		}},
		{Entries: []world.Entry{
			{Key: "in_conversation", Agents: []string{"Gianna", "Sara"}},
			{Key: "out_of_conversation", Agents: []string{"Javier"}},
		}},
		{Entries: []world.Entry{
			{Key: "master_bedroom", Agents: []string{"Emma Stone"}},
			{Key: "Unknown", Agents: []string{"Jack"}},
		}},
	}

	for _, m := range models {
		t.Run(m.String(), func(t *testing.T) {
			require.NoError(t, m.Validate())
			parsed, err := world.Parse(m.String())
			require.NoError(t, err)
			assert.True(t, m.Equal(parsed), "got %s", parsed)
			assert.Equal(t, m.String(), parsed.String())
		})
	}
}

func TestParse_Lenient(t *testing.T) {
	m, err := world.Parse("  Loc:[A,B] ,Unknown :  [ ]  ")
	require.NoError(t, err)
	assert.Equal(t, "Loc: [A, B], Unknown: []", m.String())
	assert.Equal(t, []string{"A", "B"}, m.Agents("Loc"))
	assert.Empty(t, m.Agents("Unknown"))
	assert.Nil(t, m.Agents("Garden"))
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"no brackets":     "Loc: A, B",
		"unterminated":    "Loc: [A, B",
		"trailing text":   "Loc: [A] and more",
		"missing colon":   "Loc [A]",
		"duplicate key":   "Loc: [A], Loc: [B]",
		"prose":           "I think Alice left the room.",
		"dangling comma":  "Loc: [A],",
		"nested brackets": "Loc: [[A]]",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := world.Parse(text)
			assert.ErrorIs(t, err, world.ErrMalformed)
		})
	}
}

func TestParse_RejectsDuplicateAgent(t *testing.T) {
	_, err := world.Parse("Kitchen: [Alice], Garden: [alice]")
	assert.ErrorIs(t, err, world.ErrInvariant)

	_, err = world.Parse("Kitchen: [Alice, Alice]")
	assert.ErrorIs(t, err, world.ErrInvariant)
}

func TestFind(t *testing.T) {
	text := "Here is the updated world state:\nKitchen: [Bob], Unknown: [Alice]\nLet me know if you need more."
	m, err := world.Find(text)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen: [Bob], Unknown: [Alice]", m.String())

	m, err = world.Find("World State: in_conversation: [Sara], out_of_conversation: [Javier]")
	require.NoError(t, err)
	assert.True(t, m.IsConversational())

	_, err = world.Find("nothing useful here")
	assert.Error(t, err)
}

func TestModel_Locate(t *testing.T) {
	m, err := world.Parse("Kitchen: [Bob], Unknown: [Alice]")
	require.NoError(t, err)

	key, ok := m.Locate("alice")
	assert.True(t, ok)
	assert.Equal(t, "Unknown", key)

	_, ok = m.Locate("Carol")
	assert.False(t, ok)
}

func TestNewLocations_SkipsDuplicates(t *testing.T) {
	m := world.NewLocations([]string{"Kitchen", "kitchen ", "Kitchen", "", "unknown"})
	assert.Equal(t, []string{"Kitchen", "kitchen", "Unknown"}, m.Keys())
	require.NoError(t, m.Validate())
}
