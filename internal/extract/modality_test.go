package extract

import (
	"context"
	"testing"

	"github.com/ppiankov/attest/internal/annotate"
	"github.com/ppiankov/attest/internal/model"
)

func classify(t *testing.T, sentence string) Modality {
	t.Helper()
	s, err := annotate.NewRuleAnnotator().Annotate(context.Background(), sentence)
	if err != nil {
		t.Fatalf("Annotate(%q): %v", sentence, err)
	}
	return ClassifyModality(s)
}

func TestClassifyModality_MoSCoW(t *testing.T) {
	tests := []struct {
		sentence string
		priority model.Priority
		negated  bool
		conf     float64
	}{
		{"The GUI must display a product.", model.PriorityMust, false, 1.0},
		{"The GUI should display a product.", model.PriorityShould, false, 1.0},
		{"The GUI could display a product.", model.PriorityCould, false, 1.0},
		{"The GUI must not display a product.", model.PriorityMust, true, 1.0},
		{"The GUI should not display a product.", model.PriorityShould, true, 1.0},
		{"The GUI shall display a product.", model.PriorityMust, false, 0.8},
	}

	for _, tt := range tests {
		got := classify(t, tt.sentence)
		if got.Priority != tt.priority {
			t.Errorf("%q: priority = %s, want %s", tt.sentence, got.Priority, tt.priority)
		}
		if got.Negated != tt.negated {
			t.Errorf("%q: negated = %v, want %v", tt.sentence, got.Negated, tt.negated)
		}
		if got.Confidence != tt.conf {
			t.Errorf("%q: confidence = %v, want %v", tt.sentence, got.Confidence, tt.conf)
		}
	}
}

// A bare "will not" is an absolute prohibition: it classifies as MUST with
// negated set, at full confidence.
func TestClassifyModality_WillNot(t *testing.T) {
	got := classify(t, "The footer will not display a copyright notice.")

	if got.Priority != model.PriorityMust {
		t.Errorf("Expected MUST, got %s", got.Priority)
	}
	if !got.Negated {
		t.Error("Expected negated")
	}
	if got.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %v", got.Confidence)
	}
	if got.Span != "will not" {
		t.Errorf("Expected span 'will not', got %q", got.Span)
	}
}

func TestClassifyModality_BareWill(t *testing.T) {
	got := classify(t, "The GUI will display a product.")

	if got.Priority != model.PriorityMust {
		t.Errorf("Expected MUST default, got %s", got.Priority)
	}
	if got.Negated {
		t.Error("Expected not negated")
	}
	if got.Confidence >= 0.75 {
		t.Errorf("Expected low confidence for bare 'will', got %v", got.Confidence)
	}
}

func TestClassifyModality_ModalChainSpan(t *testing.T) {
	got := classify(t, "An employee could be able to delete a product.")

	if got.Priority != model.PriorityCould {
		t.Errorf("Expected COULD, got %s", got.Priority)
	}
	if got.Span != "could be able to" {
		t.Errorf("Expected span 'could be able to', got %q", got.Span)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %v", got.Confidence)
	}
}

func TestClassifyModality_NoModal(t *testing.T) {
	got := classify(t, "The GUI must display a product.")
	if got.Confidence != 1.0 {
		t.Fatalf("sanity: %v", got.Confidence)
	}

	missing := classify(t, "The system supports many languages.")
	if missing.Priority != model.PriorityMust {
		t.Errorf("Expected MUST default, got %s", missing.Priority)
	}
	if missing.Confidence != 0.3 {
		t.Errorf("Expected defaulted confidence 0.3, got %v", missing.Confidence)
	}
	if missing.Span != "" {
		t.Errorf("Expected empty span, got %q", missing.Span)
	}
}
