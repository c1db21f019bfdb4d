package model

// Profile is the record the wizard writes. Field names mirror the JSON
// document exactly; a written profile re-parses to identical values.
type Profile struct {
	Meta   Meta   `json:"meta"`
	Player Player `json:"player"`
	Start  Start  `json:"start"`
}

// Meta groups creation metadata and theme descriptors.
type Meta struct {
	CreatedAt string `json:"created_at"` // RFC 3339, UTC
	Theme     Theme  `json:"theme"`
}

// Theme names the visual theme baked into a profile.
type Theme struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

// Player holds the operator's choices.
type Player struct {
	Name       string         `json:"name"`
	Archetype  string         `json:"archetype"`
	Scenario   string         `json:"scenario"`
	Difficulty string         `json:"difficulty"`
	Stats      map[string]int `json:"stats_0_7"`
}

// Start holds the derived starting state.
type Start struct {
	CreditScore int `json:"credit_score_0_1000"`
	DebtStress  int `json:"debt_stress_0_100"`
}
