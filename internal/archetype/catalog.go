// Package archetype holds the wizard's fixed catalogs: the five
// operator archetypes with their base stats, the scenarios, and the
// difficulty presets.
package archetype

import (
	"fmt"
	"strings"
)

// StatNames lists the seven profile stats in display order. Every base
// stat map is keyed by exactly these names.
var StatNames = []string{
	"Finance/Capital",
	"Accounting/Controls",
	"Excel/Tactics",
	"Forecasting/Modeling",
	"Risk/Underwriting",
	"Negotiation/Stakeholders",
	"Execution/Speed",
}

// Archetype is a named preset of starting stats plus its pitch text.
type Archetype struct {
	Key        string
	Name       string
	Tagline    string
	Strengths  []string
	Weaknesses []string
	Bias       string
	BaseStats  map[string]int // keyed by StatNames, values 0..7
}

// Archetypes lists the selectable archetypes in display order.
var Archetypes = []Archetype{
	{
		Key:     "banker",
		Name:    "Banker",
		Tagline: "Capital structure, leverage, and risk pricing under pressure.",
		Strengths: []string{
			"Financing & covenant negotiation",
			"Underwriting instincts",
			"Structuring terms to buy runway",
		},
		Weaknesses: []string{
			"Spreadsheet hygiene under time pressure",
			"Accounting timing / revenue recognition nuance",
		},
		Bias: "“If the structure works, the details will follow.”",
		BaseStats: map[string]int{
			"Finance/Capital":          6,
			"Accounting/Controls":      3,
			"Excel/Tactics":            3,
			"Forecasting/Modeling":     4,
			"Risk/Underwriting":        6,
			"Negotiation/Stakeholders": 5,
			"Execution/Speed":          4,
		},
	},
	{
		Key:     "accountant",
		Name:    "Accountant",
		Tagline: "Correctness, timing, and controls — clean books, clean decisions.",
		Strengths: []string{
			"Low error-rate in sheet reviews",
			"Strong AR/AP hygiene",
			"Early detection of operational leaks",
		},
		Weaknesses: []string{
			"Conservatism can slow growth",
			"Hesitation with incomplete information",
		},
		Bias: "“If it’s correct, it’s safe.”",
		BaseStats: map[string]int{
			"Finance/Capital":          3,
			"Accounting/Controls":      6,
			"Excel/Tactics":            5,
			"Forecasting/Modeling":     4,
			"Risk/Underwriting":        4,
			"Negotiation/Stakeholders": 3,
			"Execution/Speed":          4,
		},
	},
	{
		Key:     "modeler",
		Name:    "Financial Modeler",
		Tagline: "Scenarios, sensitivities, and projections — the future in numbers.",
		Strengths: []string{
			"Strong planning and variance tracking",
			"Better early warning on runway/stress",
			"Scenario-based decisions",
		},
		Weaknesses: []string{
			"Over-trusting assumptions",
			"Fragile when data quality is messy",
		},
		Bias: "“The model explains it.”",
		BaseStats: map[string]int{
			"Finance/Capital":          4,
			"Accounting/Controls":      3,
			"Excel/Tactics":            4,
			"Forecasting/Modeling":     6,
			"Risk/Underwriting":        4,
			"Negotiation/Stakeholders": 3,
			"Execution/Speed":          4,
		},
	},
	{
		Key:     "controller",
		Name:    "Controller",
		Tagline: "Integrates tactics + strategy. Balances speed, accuracy, and sequencing.",
		Strengths: []string{
			"Balanced approach under pressure",
			"Faster recovery from mistakes",
			"Better mid-game optionality",
		},
		Weaknesses: []string{
			"No early spike advantages",
			"Decision fatigue if you overthink",
		},
		Bias: "“What breaks first?”",
		BaseStats: map[string]int{
			"Finance/Capital":          4,
			"Accounting/Controls":      5,
			"Excel/Tactics":            4,
			"Forecasting/Modeling":     4,
			"Risk/Underwriting":        4,
			"Negotiation/Stakeholders": 4,
			"Execution/Speed":          4,
		},
	},
	{
		Key:     "auditor",
		Name:    "Auditor (Hard Mode)",
		Tagline: "Skepticism and second-order effects. High safety, slower momentum.",
		Strengths: []string{
			"Strong detection of errors/fraud",
			"Resilience under stress scenarios",
			"Lower catastrophic failure risk",
		},
		Weaknesses: []string{
			"Slow growth pace",
			"Friction with sales/financing urgency",
		},
		Bias: "“Prove it.”",
		BaseStats: map[string]int{
			"Finance/Capital":          3,
			"Accounting/Controls":      6,
			"Excel/Tactics":            4,
			"Forecasting/Modeling":     4,
			"Risk/Underwriting":        5,
			"Negotiation/Stakeholders": 3,
			"Execution/Speed":          3,
		},
	},
}

// Scenario pairs a stable key with its display label.
type Scenario struct {
	Key   string
	Label string
}

// Scenarios lists the starting scenarios in display order.
var Scenarios = []Scenario{
	{"chicago_night", "Chicago Night (Tokyo Neon Grid)"},
	{"funding_crunch", "Funding Crunch (Runway Compression)"},
	{"vendor_strike", "Vendor Strike (Terms Tighten)"},
	{"audit_shadow", "Audit Shadow (Controls Under Fire)"},
}

// Difficulty is a preset pair of starting stress and credit values.
type Difficulty struct {
	Key    string
	Stress int
	Credit int
}

// Difficulties lists the presets in ascending severity.
var Difficulties = []Difficulty{
	{"normal", 0, 720},
	{"hard", 15, 680},
	{"nightmare", 25, 640},
}

// Label returns the difficulty's display form, e.g. "Normal".
func (d Difficulty) Label() string {
	if d.Key == "" {
		return ""
	}
	return strings.ToUpper(d.Key[:1]) + d.Key[1:]
}

// Find returns the archetype for key.
func Find(key string) (Archetype, error) {
	for _, a := range Archetypes {
		if a.Key == key {
			return a, nil
		}
	}
	return Archetype{}, fmt.Errorf("unknown archetype: %s", key)
}

// FindScenario returns the scenario for key.
func FindScenario(key string) (Scenario, error) {
	for _, s := range Scenarios {
		if s.Key == key {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario: %s", key)
}

// FindDifficulty returns the difficulty preset for key.
func FindDifficulty(key string) (Difficulty, error) {
	for _, d := range Difficulties {
		if d.Key == key {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("unknown difficulty: %s", key)
}
