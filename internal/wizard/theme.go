// Package wizard implements the PulseVector profile wizard's terminal
// surface: the neon theme, the prompt loop, and the full CLI flow.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Bluebull7/pulsevector-sim/internal/config"
)

// ANSI fragments for the PulseVector terminal look.
const (
	ansiNeonGreen = "\033[38;5;46m"
	ansiPurple    = "\033[38;5;135m"
	ansiDim       = "\033[2m"
	ansiBold      = "\033[1m"
	ansiReset     = "\033[0m"
	ansiRed       = "\033[38;5;196m"
	ansiYellow    = "\033[38;5;226m"
)

// Logo is the banner shown before the first prompt.
const Logo = `
██████╗ ██╗   ██╗██╗     ███████╗███████╗██╗   ██╗███████╗ ██████╗████████╗ ██████╗ ██████╗
██╔══██╗██║   ██║██║     ██╔════╝██╔════╝██║   ██║██╔════╝██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗
██████╔╝██║   ██║██║     ███████╗█████╗  ██║   ██║█████╗  ██║        ██║   ██║   ██║██████╔╝
██╔═══╝ ██║   ██║██║     ╚════██║██╔══╝  ██║   ██║██╔══╝  ██║        ██║   ██║   ██║██╔══██╗
██║     ╚██████╔╝███████╗███████║███████╗╚██████╔╝███████╗╚██████╗   ██║   ╚██████╔╝██║  ██║
╚═╝      ╚═════╝ ╚══════╝╚══════╝╚══════╝ ╚═════╝ ╚══════╝ ╚═════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝
`

// Theme renders the wizard's terminal styling. The zero value passes
// text through unstyled.
type Theme struct {
	enabled bool
}

// NewTheme builds a theme for the given color mode. ColorAlways and
// ColorNever force styling on or off; ColorAuto enables it only when w
// is a terminal and TERM is not "dumb".
func NewTheme(mode string, w io.Writer) Theme {
	switch mode {
	case config.ColorAlways:
		return Theme{enabled: true}
	case config.ColorNever:
		return Theme{}
	default:
		return Theme{enabled: isTerminal(w) && os.Getenv("TERM") != "dumb"}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func (t Theme) paint(s, color string) string {
	if !t.enabled {
		return s
	}
	return color + s + ansiReset
}

// Green paints s neon green when styling is enabled.
func (t Theme) Green(s string) string { return t.paint(s, ansiNeonGreen) }

// Purple paints s purple when styling is enabled.
func (t Theme) Purple(s string) string { return t.paint(s, ansiPurple) }

// Dim renders s faint when styling is enabled.
func (t Theme) Dim(s string) string { return t.paint(s, ansiDim) }

// Bold renders s bold when styling is enabled.
func (t Theme) Bold(s string) string { return t.paint(s, ansiBold) }

// Red paints s red when styling is enabled.
func (t Theme) Red(s string) string { return t.paint(s, ansiRed) }

// Yellow paints s yellow when styling is enabled.
func (t Theme) Yellow(s string) string { return t.paint(s, ansiYellow) }

// Header prints the logo and a titled banner line.
func (t Theme) Header(w io.Writer, title string) {
	fmt.Fprintln(w, t.Green(Logo))
	fmt.Fprintln(w, t.Green(":: PULSEVECTOR-SIM ::")+" "+t.Purple(title))
	fmt.Fprintln(w, t.Dim(strings.Repeat("-", 86)))
}

// Bar7 renders a seven-slot meter, filled blocks green and the
// remainder dimmed. Values are clamped to 0..7.
func (t Theme) Bar7(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 7 {
		v = 7
	}
	return t.Green(strings.Repeat("█", v)) + t.Dim(strings.Repeat("░", 7-v))
}
