package model

// Priority is a MoSCoW priority class assigned to a requirement
type Priority int

const (
	PriorityMust Priority = iota
	PriorityShould
	PriorityCould
	PriorityWont
)

func (p Priority) String() string {
	switch p {
	case PriorityMust:
		return "MUST"
	case PriorityShould:
		return "SHOULD"
	case PriorityCould:
		return "COULD"
	case PriorityWont:
		return "WONT"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the priority as its MoSCoW name in JSON/YAML output
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Requirement is one parsed input sentence. It is created once per line and
// never mutated afterwards; RawText always round-trips unchanged.
type Requirement struct {
	ID          int          `json:"id"`                    // 0-based input order
	RawText     string       `json:"raw_text"`              // original sentence, immutable
	Actor       string       `json:"actor"`                 // canonical subject entity
	Priority    Priority     `json:"priority"`              // MoSCoW class
	Negated     bool         `json:"negated"`               // modal phrase itself is negative
	Action      string       `json:"action"`                // normalized verb phrase
	Target      string       `json:"target,omitempty"`      // object entity, empty if intransitive
	Attributes  []string     `json:"attributes,omitempty"`  // qualifiers on the target, in order
	Constraints []Constraint `json:"constraints,omitempty"` // measurable bounds
	Containment bool         `json:"containment,omitempty"` // "X must have a Y" phrasing
}

// ConstraintKind classifies a measurable bound
type ConstraintKind int

const (
	ConstraintRange ConstraintKind = iota
	ConstraintUpperBound
	ConstraintLowerBound
	ConstraintCategorical
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintRange:
		return "RANGE"
	case ConstraintUpperBound:
		return "UPPER_BOUND"
	case ConstraintLowerBound:
		return "LOWER_BOUND"
	case ConstraintCategorical:
		return "CATEGORICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the constraint kind by name
func (k ConstraintKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Constraint is a measurable bound extracted from a qualifying phrase.
// For RANGE both bounds are set and Low <= High; UPPER_BOUND sets only High,
// LOWER_BOUND only Low. CATEGORICAL pins a single value on both bounds.
type Constraint struct {
	Kind ConstraintKind `json:"kind"`
	Unit string         `json:"unit,omitempty"` // "seconds", "minutes", empty for unitless
	Low  *float64       `json:"low,omitempty"`  // nil means unbounded below
	High *float64       `json:"high,omitempty"` // nil means unbounded above
}

// Bound is a convenience for building *float64 constraint bounds
func Bound(v float64) *float64 {
	return &v
}
