package progression

import (
	"errors"
	"strings"
)

// ErrUnknownTier is returned when a tier has no entry in the tier table.
var ErrUnknownTier = errors.New("unknown tier")

// Tier names a difficulty tier. The set of tiers and their bounds come
// from the TierTable; the three below ship in the embedded default.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

// normalizeTier lower-cases and trims a tier name.
func normalizeTier(s string) Tier {
	return Tier(strings.ToLower(strings.TrimSpace(s)))
}

// Kind is the progression type. KindUnset means the player has not
// picked one yet; generated problems never carry it.
type Kind int

const (
	KindUnset Kind = iota
	KindArithmetic
	KindGeometric
)

func (k Kind) String() string {
	switch k {
	case KindArithmetic:
		return "PA"
	case KindGeometric:
		return "PG"
	default:
		return ""
	}
}

// DisplayName returns the long name of the progression kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindArithmetic:
		return "Arithmetic"
	case KindGeometric:
		return "Geometric"
	default:
		return "Unset"
	}
}

// ParseKind parses "PA"/"arithmetic"/"a" or "PG"/"geometric"/"g".
// Anything else yields KindUnset and false.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pa", "arithmetic", "a":
		return KindArithmetic, true
	case "pg", "geometric", "g":
		return KindGeometric, true
	default:
		return KindUnset, false
	}
}

// Slot is one position of the display sequence: either a visible term
// or a hidden one the player must fill in.
type Slot struct {
	value   float64
	visible bool
}

// Visible returns a slot showing v.
func Visible(v float64) Slot {
	return Slot{value: v, visible: true}
}

// Hidden returns an empty slot.
func Hidden() Slot {
	return Slot{}
}

// Value returns the slot's term and whether it is shown.
func (s Slot) Value() (float64, bool) {
	return s.value, s.visible
}

// IsHidden reports whether the slot has no value.
func (s Slot) IsHidden() bool {
	return !s.visible
}

func (s Slot) String() string {
	if !s.visible {
		return "?"
	}
	return FormatNumber(s.value)
}

// Problem is one generated puzzle. It is never mutated after Generate
// returns; a new level gets a new Problem.
type Problem struct {
	Tier   Tier
	Kind   Kind
	Reason float64

	// Full holds every term, already rounded with Round15.
	Full []float64

	// Display mirrors Full with the hidden positions emptied.
	Display []Slot

	// Hidden lists the hidden indices in ascending order. Index 0 is
	// never hidden.
	Hidden []int
}

// Len returns the sequence length.
func (p *Problem) Len() int {
	return len(p.Full)
}

// Start returns the first term.
func (p *Problem) Start() float64 {
	return p.Full[0]
}

// IsHidden reports whether index i is one of the hidden positions.
func (p *Problem) IsHidden(i int) bool {
	for _, h := range p.Hidden {
		if h == i {
			return true
		}
	}
	return false
}

// Submission is what the player entered for a problem. Terms maps a
// hidden index to the raw text typed into that pot.
type Submission struct {
	Terms  map[int]string
	Kind   Kind
	Reason string
}

// Outcome is the result of validating a Submission.
type Outcome struct {
	// Terms holds one flag per hidden index.
	Terms         map[int]bool
	KindCorrect   bool
	ReasonCorrect bool

	// Correct is true iff every flag above is true.
	Correct bool
}
