package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Bluebull7/pulsevector-sim/internal/archetype"
	"github.com/Bluebull7/pulsevector-sim/internal/profile"
)

// Option is one selectable entry in a choice prompt.
type Option struct {
	Key   string
	Label string
}

// Prompter runs line-oriented prompts over an injectable reader and
// writer so tests can script a whole session.
type Prompter struct {
	in    *bufio.Scanner
	out   io.Writer
	theme Theme
}

// NewPrompter wraps in and out for prompting.
func NewPrompter(in io.Reader, out io.Writer, theme Theme) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out, theme: theme}
}

// readLine returns the next input line, trimmed. Exhausted input
// surfaces as io.EOF.
func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Text asks for one line, returning fallback on empty input.
func (p *Prompter) Text(label, fallback string) (string, error) {
	fmt.Fprint(p.out, p.theme.Green(label))
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

// Choice shows a titled option list and reads a selection. A 1-based
// index or an option key (case-insensitive) selects; anything else
// re-prompts.
func (p *Prompter) Choice(title string, options []Option) (string, error) {
	fmt.Fprintln(p.out, p.theme.Purple(title))
	for i, o := range options {
		num := fmt.Sprintf("%2d", i+1)
		fmt.Fprintf(p.out, "  %s. %s %s\n", p.theme.Green(num), o.Label, p.theme.Dim("["+o.Key+"]"))
	}
	for {
		fmt.Fprint(p.out, p.theme.Green("Select: "))
		raw, err := p.readLine()
		if err != nil {
			return "", err
		}
		if idx, convErr := strconv.Atoi(raw); convErr == nil && idx >= 1 && idx <= len(options) {
			return options[idx-1].Key, nil
		}
		if key, ok := matchKey(raw, options); ok {
			return key, nil
		}
		fmt.Fprintln(p.out, p.theme.Yellow("Invalid choice. Try again."))
	}
}

func matchKey(raw string, options []Option) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(raw, o.Key) {
			return o.Key, true
		}
	}
	return "", false
}

// ShowArchetype prints the detail card for a chosen archetype.
func (p *Prompter) ShowArchetype(a archetype.Archetype) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.theme.Green(strings.ToUpper(a.Name))+" — "+p.theme.Dim(a.Tagline))
	fmt.Fprintln(p.out, p.theme.Purple("Strengths:"))
	for _, s := range a.Strengths {
		fmt.Fprintln(p.out, "  "+p.theme.Green("▲ ")+s)
	}
	fmt.Fprintln(p.out, p.theme.Purple("Weaknesses:"))
	for _, w := range a.Weaknesses {
		fmt.Fprintln(p.out, "  "+p.theme.Red("▼ ")+w)
	}
	fmt.Fprintln(p.out, p.theme.Purple("Bias:")+" "+p.theme.Dim(a.Bias))
	fmt.Fprintln(p.out, p.theme.Purple("\nStarting Stats (0–7):"))
	for _, stat := range archetype.StatNames {
		v := a.BaseStats[stat]
		fmt.Fprintf(p.out, "  %-22s %s %s\n", stat, p.theme.Bar7(v), p.theme.Dim(fmt.Sprintf("%d/7", v)))
	}
}

// Allocate runs the customization loop: one stat number per line raises
// that stat, Enter finishes early, and the loop ends when the pool runs
// dry. Maxed stats and bad input re-prompt without spending points.
func (p *Prompter) Allocate(b *profile.Builder) error {
	for b.Remaining() > 0 {
		fmt.Fprintln(p.out, p.theme.Green(fmt.Sprintf("\nPoints remaining: %d", b.Remaining())))
		for i, stat := range archetype.StatNames {
			v := b.Stat(stat)
			fmt.Fprintf(p.out, "  %2d. %-22s %s %s\n", i+1, stat, p.theme.Bar7(v), p.theme.Dim(fmt.Sprintf("%d/7", v)))
		}
		fmt.Fprint(p.out, p.theme.Green("Pick a stat number to increase (or press Enter to skip): "))
		raw, err := p.readLine()
		if err != nil {
			return err
		}
		if raw == "" {
			break
		}
		if !isDigits(raw) {
			fmt.Fprintln(p.out, p.theme.Yellow("Enter a number."))
			continue
		}
		idx, _ := strconv.Atoi(raw)
		if idx < 1 || idx > len(archetype.StatNames) {
			fmt.Fprintln(p.out, p.theme.Yellow("Invalid stat."))
			continue
		}
		if err := b.Allocate(archetype.StatNames[idx-1]); err != nil {
			if errors.Is(err, profile.ErrStatMaxed) {
				fmt.Fprintln(p.out, p.theme.Yellow("That stat is already maxed (7)."))
				continue
			}
			return err
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
