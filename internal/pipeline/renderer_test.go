package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/attest/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		RunID:       "run-1",
		Source:      "reqs.txt",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Requirements: []model.Requirement{
			{ID: 0, RawText: "The GUI must display a product.", Actor: "gui", Action: "display",
				Target: "product", Priority: model.PriorityMust},
		},
		TestCases: []model.TestCase{
			{RequirementID: 0, Kind: model.TestPositive, Given: "Given the gui is present",
				When: "When the gui displays the product", Then: "Then the product is displayed",
				Priority: model.PriorityMust},
		},
		Skipped: []model.SkippedLine{
			{ID: 1, RawText: "It won't work.", Reason: "contains a contraction"},
		},
		Warnings: []model.LineWarning{
			{ID: 0, RawText: "The GUI must display a product", Reason: "missing full stop"},
		},
		LowConfidence: []model.LowConfidenceLine{
			{ID: 0, ModalSpan: "will", Confidence: 0.3},
		},
		Stats: model.Stats{
			Lines: 2, Parsed: 1, Coverage: 0.5, Confidence: "high",
			ByPriority: map[string]int{"MUST": 1}, ByKind: map[string]int{"POSITIVE": 1},
			NetworkNodes: 2,
		},
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := NewRenderer(true).RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("Expected render, got error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if decoded.RunID != "run-1" || len(decoded.Requirements) != 1 {
		t.Errorf("Round trip lost data: %+v", decoded)
	}
}

func TestRenderMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.md")
	if err := NewRenderer(true).RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("Expected render, got error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	md := string(data)

	for _, want := range []string{
		"# Acceptance Test Plan",
		"## Statistics",
		"## Requirements",
		"| R0 | MUST | gui | display | product | no |",
		"### R0: The GUI must display a product.",
		"Then the product is displayed",
		"## Skipped Lines",
		"contains a contraction",
		"## Warnings",
		"missing full stop",
		"## Low-Confidence Classifications",
		"## Traceability Matrix",
		"| R0 | T0 | POSITIVE |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestRenderMarkdown_MatrixOptional(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.md")
	if err := NewRenderer(false).RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("Expected render, got error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "## Traceability Matrix") {
		t.Error("Expected no matrix when disabled")
	}
}

func TestRenderReviewFile_EmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.review.md")
	if err := NewRenderer(true).RenderReviewFile("", path); err != nil {
		t.Fatalf("Expected no-op, got error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no file for an empty review")
	}
}
