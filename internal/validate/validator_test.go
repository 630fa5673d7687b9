package validate

import (
	"strings"
	"testing"

	"github.com/ppiankov/attest/internal/model"
)

func validReport() *model.Report {
	five := 5.0
	return &model.Report{
		Requirements: []model.Requirement{
			{ID: 0, RawText: "The GUI must display a product.", Actor: "gui", Action: "display",
				Target: "product", Priority: model.PriorityMust},
			{ID: 1, RawText: "The page must load within 5 seconds.", Actor: "page", Action: "load",
				Priority: model.PriorityMust,
				Constraints: []model.Constraint{
					{Kind: model.ConstraintUpperBound, High: &five, Unit: "seconds"},
				}},
		},
		TestCases: []model.TestCase{
			{RequirementID: 0, Kind: model.TestPositive, Given: "g", When: "w", Then: "t", Priority: model.PriorityMust},
			{RequirementID: 1, Kind: model.TestPerformance, Given: "g", When: "w", Then: "t", Priority: model.PriorityMust},
		},
		Skipped: []model.SkippedLine{
			{ID: 2, RawText: "It won't work.", Reason: "contains a contraction"},
		},
		Stats: model.Stats{Lines: 3, Parsed: 2},
	}
}

func TestReport_Valid(t *testing.T) {
	if err := Report(validReport()); err != nil {
		t.Errorf("Expected valid report, got %v", err)
	}
}

func TestReport_DuplicateRequirementID(t *testing.T) {
	r := validReport()
	r.Requirements[1].ID = 0
	r.TestCases[1].RequirementID = 0

	err := Report(r)
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Errorf("Expected duplicate id violation, got %v", err)
	}
}

func TestReport_LostRawText(t *testing.T) {
	r := validReport()
	r.Requirements[0].RawText = ""

	err := Report(r)
	if err == nil || !strings.Contains(err.Error(), "raw text lost") {
		t.Errorf("Expected raw text violation, got %v", err)
	}
}

func TestReport_NonCanonicalActor(t *testing.T) {
	r := validReport()
	r.Requirements[0].Actor = "GUI"

	err := Report(r)
	if err == nil || !strings.Contains(err.Error(), "not canonical") {
		t.Errorf("Expected canonical actor violation, got %v", err)
	}
}

func TestReport_OrphanTestCase(t *testing.T) {
	r := validReport()
	r.TestCases[0].RequirementID = 99

	err := Report(r)
	if err == nil || !strings.Contains(err.Error(), "unknown requirement") {
		t.Errorf("Expected orphan case violation, got %v", err)
	}
}

func TestReport_PriorityDrift(t *testing.T) {
	r := validReport()
	r.TestCases[0].Priority = model.PriorityCould

	err := Report(r)
	if err == nil || !strings.Contains(err.Error(), "does not match requirement") {
		t.Errorf("Expected priority violation, got %v", err)
	}
}

func TestReport_IncompleteClauses(t *testing.T) {
	r := validReport()
	r.TestCases[1].Then = ""

	err := Report(r)
	if err == nil || !strings.Contains(err.Error(), "incomplete clauses") {
		t.Errorf("Expected clause violation, got %v", err)
	}
}

func TestReport_ParsedAndSkippedOverlap(t *testing.T) {
	r := validReport()
	r.Skipped[0].ID = 0
	r.Stats.Lines = 3

	err := Report(r)
	if err == nil || !strings.Contains(err.Error(), "both parsed and skipped") {
		t.Errorf("Expected overlap violation, got %v", err)
	}
}

func TestReport_LineAccounting(t *testing.T) {
	r := validReport()
	r.Stats.Lines = 5

	err := Report(r)
	if err == nil || !strings.Contains(err.Error(), "line accounting") {
		t.Errorf("Expected accounting violation, got %v", err)
	}
}

func TestReport_ConstraintShapes(t *testing.T) {
	three, five := 3.0, 5.0

	tests := []struct {
		name       string
		constraint model.Constraint
		wantErr    string
	}{
		{"range missing bound", model.Constraint{Kind: model.ConstraintRange, Low: &three}, "range missing a bound"},
		{"range inverted", model.Constraint{Kind: model.ConstraintRange, Low: &five, High: &three}, "bounds inverted"},
		{"upper missing value", model.Constraint{Kind: model.ConstraintUpperBound}, "upper bound missing value"},
		{"lower missing value", model.Constraint{Kind: model.ConstraintLowerBound}, "lower bound missing value"},
		{"categorical unpinned", model.Constraint{Kind: model.ConstraintCategorical, Low: &three, High: &five}, "not pinned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReport()
			r.Requirements[1].Constraints = []model.Constraint{tt.constraint}

			err := Report(r)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected %q violation, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReport_CollectsAllViolations(t *testing.T) {
	r := validReport()
	r.Requirements[0].Actor = ""
	r.TestCases[1].Given = ""
	r.Stats.Lines = 9

	err := Report(r)
	if err == nil {
		t.Fatal("Expected violations")
	}
	for _, want := range []string{"empty actor", "incomplete clauses", "line accounting"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in joined error, got %v", want, err)
		}
	}
}
