package wizard

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"github.com/Bluebull7/pulsevector-sim/internal/archetype"
	"github.com/Bluebull7/pulsevector-sim/internal/model"
	"github.com/Bluebull7/pulsevector-sim/internal/profile"
)

// CLI is the terminal wizard. Zero fields fall back to stdin/stdout,
// the default operator name, and a crypto-seeded generator.
type CLI struct {
	In          io.Reader
	Out         io.Writer
	Theme       Theme
	DefaultName string
	Rand        *rand.Rand
}

// Run walks the prompt sequence and returns the derived profile. The
// caller decides where to write it.
func (c CLI) Run() (model.Profile, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	defaultName := c.DefaultName
	if defaultName == "" {
		defaultName = profile.DefaultName
	}
	rng := c.Rand
	if rng == nil {
		rng = profile.NewRand()
	}

	p := NewPrompter(in, out, c.Theme)
	c.Theme.Header(out, "CREATE PROFILE")

	name, err := p.Text("Operator callsign (name): ", defaultName)
	if err != nil {
		return model.Profile{}, err
	}

	archOptions := make([]Option, 0, len(archetype.Archetypes))
	for _, a := range archetype.Archetypes {
		archOptions = append(archOptions, Option{Key: a.Key, Label: a.Name})
	}
	archKey, err := p.Choice("Choose your starting archetype:", archOptions)
	if err != nil {
		return model.Profile{}, err
	}
	arch, err := archetype.Find(archKey)
	if err != nil {
		return model.Profile{}, err
	}
	p.ShowArchetype(arch)

	scenOptions := make([]Option, 0, len(archetype.Scenarios))
	for _, s := range archetype.Scenarios {
		scenOptions = append(scenOptions, Option{Key: s.Key, Label: s.Label})
	}
	scenKey, err := p.Choice("\nChoose starting scenario:", scenOptions)
	if err != nil {
		return model.Profile{}, err
	}

	diffOptions := make([]Option, 0, len(archetype.Difficulties))
	for _, d := range archetype.Difficulties {
		diffOptions = append(diffOptions, Option{Key: d.Key, Label: d.Label()})
	}
	diffKey, err := p.Choice("\nChoose difficulty:", diffOptions)
	if err != nil {
		return model.Profile{}, err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, c.Theme.Purple("Customization:")+" "+c.Theme.Dim("You get 3 points to allocate (+1 each). Max 7."))
	builder := profile.NewBuilder(arch)
	if err := p.Allocate(builder); err != nil {
		return model.Profile{}, err
	}

	prof, err := profile.New(profile.Params{
		Name:       name,
		Archetype:  archKey,
		Scenario:   scenKey,
		Difficulty: diffKey,
		Stats:      builder.Stats(),
	}, rng)
	if err != nil {
		return model.Profile{}, err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, c.Theme.Green("PROFILE READY"))
	fmt.Fprintln(out, c.Theme.Purple("  Credit Score:")+" "+c.Theme.Green(strconv.Itoa(prof.Start.CreditScore)))
	fmt.Fprintln(out, c.Theme.Purple("  Debt Stress:")+" "+c.Theme.Yellow(strconv.Itoa(prof.Start.DebtStress)))
	return prof, nil
}
