package model

// TestKind classifies the template a test case was generated from
type TestKind int

const (
	TestPositive TestKind = iota
	TestNegative
	TestPerformance
	TestAttribute
)

func (k TestKind) String() string {
	switch k {
	case TestPositive:
		return "POSITIVE"
	case TestNegative:
		return "NEGATIVE"
	case TestPerformance:
		return "PERFORMANCE"
	case TestAttribute:
		return "ATTRIBUTE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the test kind by name
func (k TestKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TestCase is one generated acceptance-test stub. Every case is traceable to
// exactly one requirement; a requirement yields multiple cases only when it
// carries multiple constraints (one PERFORMANCE case per constraint).
type TestCase struct {
	RequirementID int      `json:"requirement_id"`
	Kind          TestKind `json:"kind"`
	Given         string   `json:"given"`
	When          string   `json:"when"`
	Then          string   `json:"then"`
	Priority      Priority `json:"priority"` // copied unchanged for triage
}
