package wizard

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bluebull7/pulsevector-sim/internal/archetype"
	"github.com/Bluebull7/pulsevector-sim/internal/config"
	"github.com/Bluebull7/pulsevector-sim/internal/model"
	"github.com/Bluebull7/pulsevector-sim/internal/profile"
)

func runScript(t *testing.T, lines ...string) (model.Profile, string) {
	t.Helper()
	var out bytes.Buffer
	cli := CLI{
		In:   strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:  &out,
		Rand: rand.New(rand.NewSource(7)),
	}
	prof, err := cli.Run()
	require.NoError(t, err)
	return prof, out.String()
}

func TestCLI_DefaultsThrough(t *testing.T) {
	prof, out := runScript(t, "", "1", "1", "1", "")

	assert.Equal(t, profile.DefaultName, prof.Player.Name)
	assert.Equal(t, "banker", prof.Player.Archetype)
	assert.Equal(t, "chicago_night", prof.Player.Scenario)
	assert.Equal(t, "normal", prof.Player.Difficulty)

	banker, err := archetype.Find("banker")
	require.NoError(t, err)
	assert.Equal(t, banker.BaseStats, prof.Player.Stats, "skipping allocation keeps base stats")

	assert.Contains(t, out, ":: PULSEVECTOR-SIM ::")
	assert.Contains(t, out, "BANKER")
	assert.Contains(t, out, "▲ Financing & covenant negotiation")
	assert.Contains(t, out, "▼ Spreadsheet hygiene under time pressure")
	assert.Contains(t, out, "PROFILE READY")
	assert.Contains(t, out, "Credit Score:")
}

func TestCLI_SelectionByKey(t *testing.T) {
	prof, _ := runScript(t, "Nova", "AUDITOR", "audit_shadow", "Nightmare", "")

	assert.Equal(t, "Nova", prof.Player.Name)
	assert.Equal(t, "auditor", prof.Player.Archetype, "keys match case-insensitively")
	assert.Equal(t, "audit_shadow", prof.Player.Scenario)
	assert.Equal(t, "nightmare", prof.Player.Difficulty)
}

func TestCLI_RepromptsOnInvalid(t *testing.T) {
	prof, out := runScript(t, "x", "99", "banker", "7", "2", "zzz", "hard", "")

	assert.Equal(t, "banker", prof.Player.Archetype)
	assert.Equal(t, "funding_crunch", prof.Player.Scenario)
	assert.Equal(t, "hard", prof.Player.Difficulty)
	assert.Equal(t, 3, strings.Count(out, "Invalid choice. Try again."))
}

func TestCLI_Allocation(t *testing.T) {
	// Banker: Finance/Capital 6, Accounting/Controls 3, Excel/Tactics 3.
	prof, out := runScript(t, "", "1", "1", "1", "1", "1", "x", "99", "3", "2")

	assert.Equal(t, 7, prof.Player.Stats["Finance/Capital"])
	assert.Equal(t, 4, prof.Player.Stats["Excel/Tactics"])
	assert.Equal(t, 4, prof.Player.Stats["Accounting/Controls"])

	assert.Contains(t, out, "Points remaining: 3")
	assert.Contains(t, out, "That stat is already maxed (7).")
	assert.Contains(t, out, "Enter a number.")
	assert.Contains(t, out, "Invalid stat.")
}

func TestCLI_EOFMidFlow(t *testing.T) {
	var out bytes.Buffer
	cli := CLI{
		In:   strings.NewReader("Nova\n"),
		Out:  &out,
		Rand: rand.New(rand.NewSource(1)),
	}
	_, err := cli.Run()
	assert.ErrorIs(t, err, io.EOF)
}

func TestChoice_Listing(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\n"), &out, Theme{})

	key, err := p.Choice("Pick:", []Option{{"a", "Alpha"}, {"b", "Beta"}})
	require.NoError(t, err)
	assert.Equal(t, "b", key)
	assert.Contains(t, out.String(), "   1. Alpha [a]")
	assert.Contains(t, out.String(), "   2. Beta [b]")
}

func TestText_Fallback(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n"), &out, Theme{})

	got, err := p.Text("Name: ", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
}

func TestTheme_Disabled(t *testing.T) {
	th := Theme{}
	assert.Equal(t, "hello", th.Green("hello"))
	assert.Equal(t, "███░░░░", th.Bar7(3))
}

func TestTheme_Always(t *testing.T) {
	th := NewTheme(config.ColorAlways, io.Discard)
	assert.Equal(t, ansiNeonGreen+"hi"+ansiReset, th.Green("hi"))
	assert.Equal(t, ansiYellow+"warn"+ansiReset, th.Yellow("warn"))
}

func TestTheme_AutoOutsideTerminal(t *testing.T) {
	th := NewTheme(config.ColorAuto, &bytes.Buffer{})
	assert.Equal(t, "plain", th.Green("plain"), "buffers never get escapes")
}

func TestBar7_Clamps(t *testing.T) {
	th := Theme{}
	assert.Equal(t, strings.Repeat("░", 7), th.Bar7(-2))
	assert.Equal(t, strings.Repeat("█", 7), th.Bar7(11))
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("42"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("-1"))
	assert.False(t, isDigits("1a"))
}
