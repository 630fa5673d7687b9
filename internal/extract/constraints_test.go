package extract

import (
	"context"
	"testing"

	"github.com/ppiankov/attest/internal/annotate"
	"github.com/ppiankov/attest/internal/model"
)

func parseConstraints(t *testing.T, sentence string) []ConstraintMatch {
	t.Helper()
	s, err := annotate.NewRuleAnnotator().Annotate(context.Background(), sentence)
	if err != nil {
		t.Fatalf("Annotate(%q): %v", sentence, err)
	}
	return ParseConstraints(s)
}

func TestParseConstraints_Range(t *testing.T) {
	matches := parseConstraints(t, "The system must load between 0 and 5 seconds.")
	if len(matches) != 1 {
		t.Fatalf("Expected 1 constraint, got %d", len(matches))
	}

	c := matches[0].Constraint
	if c.Kind != model.ConstraintRange {
		t.Errorf("Expected RANGE, got %s", c.Kind)
	}
	if c.Unit != "seconds" {
		t.Errorf("Expected unit 'seconds', got %q", c.Unit)
	}
	if c.Low == nil || *c.Low != 0 {
		t.Errorf("Expected low 0, got %v", c.Low)
	}
	if c.High == nil || *c.High != 5 {
		t.Errorf("Expected high 5, got %v", c.High)
	}
}

func TestParseConstraints_RangeInvertedBounds(t *testing.T) {
	matches := parseConstraints(t, "The export must complete between 10 and 2 minutes.")
	if len(matches) != 1 {
		t.Fatalf("Expected 1 constraint, got %d", len(matches))
	}

	c := matches[0].Constraint
	if *c.Low != 2 || *c.High != 10 {
		t.Errorf("Expected normalized bounds 2..10, got %v..%v", *c.Low, *c.High)
	}
}

func TestParseConstraints_UpperBound(t *testing.T) {
	tests := []string{
		"The product page must load within 5 seconds.",
		"The product page must load in less than 5 seconds.",
		"The product page must load under 5 seconds.",
		"The product page must load in at most 5 seconds.",
	}

	for _, sentence := range tests {
		matches := parseConstraints(t, sentence)
		if len(matches) != 1 {
			t.Fatalf("%q: expected 1 constraint, got %d", sentence, len(matches))
		}
		c := matches[0].Constraint
		if c.Kind != model.ConstraintUpperBound {
			t.Errorf("%q: expected UPPER_BOUND, got %s", sentence, c.Kind)
		}
		if c.High == nil || *c.High != 5 {
			t.Errorf("%q: expected high 5, got %v", sentence, c.High)
		}
		if c.Low != nil {
			t.Errorf("%q: expected unbounded below, got %v", sentence, *c.Low)
		}
		if c.Unit != "seconds" {
			t.Errorf("%q: expected unit 'seconds', got %q", sentence, c.Unit)
		}
	}
}

func TestParseConstraints_LowerBound(t *testing.T) {
	tests := []string{
		"The session must last at least 30 minutes.",
		"The session must last more than 30 minutes.",
		"The session must last over 30 minutes.",
	}

	for _, sentence := range tests {
		matches := parseConstraints(t, sentence)
		if len(matches) != 1 {
			t.Fatalf("%q: expected 1 constraint, got %d", sentence, len(matches))
		}
		c := matches[0].Constraint
		if c.Kind != model.ConstraintLowerBound {
			t.Errorf("%q: expected LOWER_BOUND, got %s", sentence, c.Kind)
		}
		if c.Low == nil || *c.Low != 30 {
			t.Errorf("%q: expected low 30, got %v", sentence, c.Low)
		}
		if c.High != nil {
			t.Errorf("%q: expected unbounded above, got %v", sentence, *c.High)
		}
		if c.Unit != "minutes" {
			t.Errorf("%q: expected unit 'minutes', got %q", sentence, c.Unit)
		}
	}
}

func TestParseConstraints_Categorical(t *testing.T) {
	matches := parseConstraints(t, "The system must support 3 languages.")
	if len(matches) != 1 {
		t.Fatalf("Expected 1 constraint, got %d", len(matches))
	}

	c := matches[0].Constraint
	if c.Kind != model.ConstraintCategorical {
		t.Errorf("Expected CATEGORICAL, got %s", c.Kind)
	}
	if c.Unit != "languages" {
		t.Errorf("Expected unit 'languages', got %q", c.Unit)
	}
	if c.Low == nil || c.High == nil || *c.Low != 3 || *c.High != 3 {
		t.Errorf("Expected pinned value 3, got %v..%v", c.Low, c.High)
	}
}

func TestParseConstraints_NumberWords(t *testing.T) {
	matches := parseConstraints(t, "The product page must load within five seconds.")
	if len(matches) != 1 {
		t.Fatalf("Expected 1 constraint, got %d", len(matches))
	}

	c := matches[0].Constraint
	if c.Kind != model.ConstraintUpperBound || c.High == nil || *c.High != 5 {
		t.Errorf("Expected upper bound 5 from 'five', got %+v", c)
	}
}

func TestParseConstraints_SpanCoversBoundPhrase(t *testing.T) {
	matches := parseConstraints(t, "The system must load between 0 and 5 seconds.")
	if len(matches) != 1 {
		t.Fatalf("Expected 1 constraint, got %d", len(matches))
	}

	// Tokens: the(0) system(1) must(2) load(3) between(4) 0(5) and(6) 5(7) seconds(8)
	m := matches[0]
	if m.Start != 4 {
		t.Errorf("Expected span start at 'between' (4), got %d", m.Start)
	}
	if m.End != 9 {
		t.Errorf("Expected span end past 'seconds' (9), got %d", m.End)
	}
}

func TestParseConstraints_NoConstraint(t *testing.T) {
	if matches := parseConstraints(t, "The GUI must display a product."); len(matches) != 0 {
		t.Errorf("Expected no constraints, got %d", len(matches))
	}
}
