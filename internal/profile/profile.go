// Package profile derives and persists PulseVector operator profiles.
//
// The wizard surfaces collect a Params, New validates it and rolls the
// derived starting values, and Write serializes the result. Reading a
// written profile back yields identical values.
package profile

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Bluebull7/pulsevector-sim/internal/archetype"
	"github.com/Bluebull7/pulsevector-sim/internal/model"
)

// DefaultName is the operator name used when none is given.
const DefaultName = "Senior Operator"

// DefaultFilename is where profiles land unless overridden.
const DefaultFilename = "pulsevector_profile.json"

// Theme descriptors recorded in every profile.
const (
	ThemePrimary = "tokyo_neon_green"
	ThemeAccent  = "purple"
)

// Jitter half-widths for the derived starting values.
const (
	creditJitter = 15
	stressJitter = 5
)

// Params collects the wizard's choices before derivation.
type Params struct {
	Name       string
	Archetype  string
	Scenario   string
	Difficulty string
	Stats      map[string]int
}

// Validate checks that every key names a catalog entry and the stat map
// covers exactly the known stats within bounds.
func (p Params) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Archetype, validation.Required, validation.By(knownArchetype)),
		validation.Field(&p.Scenario, validation.Required, validation.By(knownScenario)),
		validation.Field(&p.Difficulty, validation.Required, validation.By(knownDifficulty)),
		validation.Field(&p.Stats, validation.Required, validation.By(validStats)),
	)
}

func knownArchetype(v interface{}) error {
	key, _ := v.(string)
	_, err := archetype.Find(key)
	return err
}

func knownScenario(v interface{}) error {
	key, _ := v.(string)
	_, err := archetype.FindScenario(key)
	return err
}

func knownDifficulty(v interface{}) error {
	key, _ := v.(string)
	_, err := archetype.FindDifficulty(key)
	return err
}

func validStats(v interface{}) error {
	stats, _ := v.(map[string]int)
	if len(stats) != len(archetype.StatNames) {
		return fmt.Errorf("expected %d stats, got %d", len(archetype.StatNames), len(stats))
	}
	for _, name := range archetype.StatNames {
		val, ok := stats[name]
		if !ok {
			return fmt.Errorf("missing stat %s", name)
		}
		if val < 0 || val > StatCeiling {
			return fmt.Errorf("stat %s out of range: %d", name, val)
		}
	}
	return nil
}

// New validates params and derives a full profile. rng drives the
// credit and stress jitter; production callers pass NewRand().
func New(p Params, rng *rand.Rand) (model.Profile, error) {
	if err := p.Validate(); err != nil {
		return model.Profile{}, err
	}
	diff, err := archetype.FindDifficulty(p.Difficulty)
	if err != nil {
		return model.Profile{}, err
	}

	stats := make(map[string]int, len(p.Stats))
	for k, v := range p.Stats {
		stats[k] = v
	}

	return model.Profile{
		Meta: model.Meta{
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Theme:     model.Theme{Primary: ThemePrimary, Accent: ThemeAccent},
		},
		Player: model.Player{
			Name:       p.Name,
			Archetype:  p.Archetype,
			Scenario:   p.Scenario,
			Difficulty: p.Difficulty,
			Stats:      stats,
		},
		Start: model.Start{
			CreditScore: diff.Credit + jitter(rng, creditJitter),
			DebtStress:  clamp(diff.Stress+jitter(rng, stressJitter), 0, 100),
		},
	}, nil
}

// jitter returns a uniform value in [-n, n].
func jitter(rng *rand.Rand, n int) int {
	return rng.Intn(2*n+1) - n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Write serializes p to path with two-space indentation.
func Write(path string, p model.Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read parses a written profile back.
func Read(path string) (model.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Profile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var p model.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Profile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}
