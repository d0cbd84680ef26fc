package engine

import "fmt"

// Persona identifies one of the three fixed alter egos. The set is closed;
// records for anything else are rejected at the boundary.
type Persona string

const (
	PersonaKei     Persona = "kei"
	PersonaMrRobot Persona = "mr-robot"
	PersonaTyler   Persona = "tyler"
)

func (p Persona) IsValid() bool {
	_, ok := personaInfo[p]
	return ok
}

func (p Persona) String() string { return string(p) }

// Info returns the persona's fixed configuration. Calling it on an invalid
// persona returns the zero value; validate first.
func (p Persona) Info() PersonaInfo {
	return personaInfo[p]
}

// AllPersonas returns the roster in its stable display order: soul, mind,
// body.
func AllPersonas() []Persona {
	return []Persona{PersonaKei, PersonaMrRobot, PersonaTyler}
}

// ParsePersona validates user input against the roster.
func ParsePersona(s string) (Persona, error) {
	p := Persona(s)
	if !p.IsValid() {
		return "", UnknownPersonaError{Input: s}
	}
	return p, nil
}

type UnknownPersonaError struct {
	Input string
}

func (e UnknownPersonaError) Error() string {
	return fmt.Sprintf("unknown alter ego %q (want kei, mr-robot or tyler)", e.Input)
}

// PersonaInfo is the fixed per-persona configuration: display name, mission
// code prefix, the synergy category its abilities roll up into, and the
// ability set it is seeded with.
type PersonaInfo struct {
	Name      string
	Role      string
	Prefix    string
	Category  string
	Abilities []string
}

var personaInfo = map[Persona]PersonaInfo{
	PersonaKei: {
		Name:     "Kei",
		Role:     "The Monk of Still Waters",
		Prefix:   "K",
		Category: "serenity",
		Abilities: []string{
			"self-control", "peace", "wisdom", "focus",
			"resilience", "harmony", "mindfulness", "intuition",
		},
	},
	PersonaMrRobot: {
		Name:     "Mr-Robot",
		Role:     "The Architect of Systems",
		Prefix:   "M",
		Category: "intellect",
		Abilities: []string{
			"intelligence", "logic", "adaptability", "innovation",
			"focus", "systemization", "precision", "speed",
		},
	},
	PersonaTyler: {
		Name:     "Tyler",
		Role:     "The Untamed Wolf",
		Prefix:   "T",
		Category: "ferocity",
		Abilities: []string{
			"strength", "discipline", "aggression", "confidence",
			"dominance", "pain-tolerance", "honor", "determination",
		},
	},
}
