package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ppiankov/attest/internal/model"
)

// Renderer writes reports as JSON and Markdown and prints the console
// summary
type Renderer struct {
	includeMatrix bool
}

// NewRenderer creates a renderer
func NewRenderer(includeMatrix bool) *Renderer {
	return &Renderer{includeMatrix: includeMatrix}
}

// RenderJSON writes the complete report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the human-readable test plan
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Acceptance Test Plan\n\n")
	fmt.Fprintf(&b, "- Run ID: `%s`\n", report.RunID)
	fmt.Fprintf(&b, "- Source: %s\n", report.Source)
	fmt.Fprintf(&b, "- Generated: %s\n\n", report.GeneratedAt.Format(time.RFC3339))

	r.writeStats(&b, report)
	r.writeRequirements(&b, report)
	r.writeTestCases(&b, report)
	r.writeSkipped(&b, report)
	r.writeWarnings(&b, report)
	r.writeLowConfidence(&b, report)
	if r.includeMatrix {
		r.writeMatrix(&b, report)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) writeStats(b *strings.Builder, report *model.Report) {
	s := report.Stats
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Input lines | %d |\n", s.Lines)
	fmt.Fprintf(b, "| Requirements parsed | %d |\n", s.Parsed)
	fmt.Fprintf(b, "| Coverage | %.0f%% |\n", s.Coverage*100)
	fmt.Fprintf(b, "| Classification confidence | %s |\n", s.Confidence)
	fmt.Fprintf(b, "| Test cases | %d |\n", len(report.TestCases))
	fmt.Fprintf(b, "| Network entities | %d |\n", s.NetworkNodes)

	if len(s.ByPriority) > 0 {
		b.WriteString("\nPriority distribution: ")
		var parts []string
		for _, p := range []string{"MUST", "SHOULD", "COULD", "WONT"} {
			if n := s.ByPriority[p]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", p, n))
			}
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (r *Renderer) writeRequirements(b *strings.Builder, report *model.Report) {
	if len(report.Requirements) == 0 {
		return
	}
	b.WriteString("## Requirements\n\n")
	b.WriteString("| ID | Priority | Actor | Action | Target | Negated |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, req := range report.Requirements {
		fmt.Fprintf(b, "| R%d | %s | %s | %s | %s | %s |\n",
			req.ID, req.Priority, req.Actor, req.Action, orDash(req.Target), yesNo(req.Negated))
	}
	b.WriteString("\n")
}

func (r *Renderer) writeTestCases(b *strings.Builder, report *model.Report) {
	if len(report.TestCases) == 0 {
		return
	}
	b.WriteString("## Test Cases\n\n")

	byReq := make(map[int][]model.TestCase)
	for _, tc := range report.TestCases {
		byReq[tc.RequirementID] = append(byReq[tc.RequirementID], tc)
	}

	for _, req := range report.Requirements {
		cases := byReq[req.ID]
		if len(cases) == 0 {
			continue
		}
		fmt.Fprintf(b, "### R%d: %s\n\n", req.ID, req.RawText)
		b.WriteString("| Kind | Given | When | Then |\n|---|---|---|---|\n")
		for _, tc := range cases {
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n", tc.Kind, tc.Given, tc.When, tc.Then)
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) writeSkipped(b *strings.Builder, report *model.Report) {
	if len(report.Skipped) == 0 {
		return
	}
	b.WriteString("## Skipped Lines\n\n")
	b.WriteString("| ID | Reason | Text |\n|---|---|---|\n")
	for _, sk := range report.Skipped {
		fmt.Fprintf(b, "| %d | %s | %s |\n", sk.ID, sk.Reason, sk.RawText)
	}
	b.WriteString("\n")
}

func (r *Renderer) writeWarnings(b *strings.Builder, report *model.Report) {
	if len(report.Warnings) == 0 {
		return
	}
	b.WriteString("## Warnings\n\n")
	b.WriteString("These lines were processed despite a cosmetic defect.\n\n")
	b.WriteString("| ID | Reason | Text |\n|---|---|---|\n")
	for _, w := range report.Warnings {
		fmt.Fprintf(b, "| %d | %s | %s |\n", w.ID, w.Reason, w.RawText)
	}
	b.WriteString("\n")
}

func (r *Renderer) writeLowConfidence(b *strings.Builder, report *model.Report) {
	if len(report.LowConfidence) == 0 {
		return
	}
	b.WriteString("## Low-Confidence Classifications\n\n")
	b.WriteString("These lines were classified by the prescriptive default and should be reviewed.\n\n")
	b.WriteString("| ID | Modal span | Confidence |\n|---|---|---|\n")
	for _, lc := range report.LowConfidence {
		fmt.Fprintf(b, "| %d | %s | %.2f |\n", lc.ID, orDash(lc.ModalSpan), lc.Confidence)
	}
	b.WriteString("\n")
}

// writeMatrix renders the traceability matrix: every requirement mapped to
// the test cases generated from it, so reviewers can see at a glance which
// requirements are thinly covered.
func (r *Renderer) writeMatrix(b *strings.Builder, report *model.Report) {
	if len(report.Requirements) == 0 {
		return
	}
	b.WriteString("## Traceability Matrix\n\n")
	b.WriteString("| Requirement | Test Cases | Kinds |\n|---|---|---|\n")

	byReq := make(map[int][]int)
	for i, tc := range report.TestCases {
		byReq[tc.RequirementID] = append(byReq[tc.RequirementID], i)
	}

	for _, req := range report.Requirements {
		indexes := byReq[req.ID]
		if len(indexes) == 0 {
			fmt.Fprintf(b, "| R%d | - | - |\n", req.ID)
			continue
		}
		var ids, kinds []string
		for _, i := range indexes {
			ids = append(ids, fmt.Sprintf("T%d", i))
			kinds = append(kinds, report.TestCases[i].Kind.String())
		}
		fmt.Fprintf(b, "| R%d | %s | %s |\n", req.ID, strings.Join(ids, ", "), strings.Join(kinds, ", "))
	}
	b.WriteString("\n")
}

// RenderTestTable prints the generated cases as a console table
func (r *Renderer) RenderTestTable(report *model.Report) {
	if len(report.TestCases) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GIVEN\tWHEN\tTHEN\tPRIORITY\tREQUIREMENT")
	for _, tc := range report.TestCases {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\tR%d\n", tc.Given, tc.When, tc.Then, tc.Priority, tc.RequirementID)
	}
	_ = w.Flush()
	fmt.Println()
}

// RenderReviewFile writes the standalone plan-review markdown
func (r *Renderer) RenderReviewFile(markdown, path string) error {
	if markdown == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a console summary of the run
func (r *Renderer) RenderSummary(report *model.Report) {
	s := report.Stats
	fmt.Println()
	fmt.Printf("Source:       %s\n", report.Source)
	fmt.Printf("Requirements: %d of %d lines (coverage %.0f%%, confidence %s)\n",
		s.Parsed, s.Lines, s.Coverage*100, s.Confidence)
	fmt.Printf("Test cases:   %d", len(report.TestCases))
	if len(s.ByKind) > 0 {
		kinds := make([]string, 0, len(s.ByKind))
		for k := range s.ByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		var parts []string
		for _, k := range kinds {
			parts = append(parts, fmt.Sprintf("%d %s", s.ByKind[k], strings.ToLower(k)))
		}
		fmt.Printf(" (%s)", strings.Join(parts, ", "))
	}
	fmt.Println()
	if len(report.Skipped) > 0 {
		fmt.Printf("Skipped:      %d lines (see report manifest)\n", len(report.Skipped))
	}
	if len(report.Warnings) > 0 {
		fmt.Printf("Warnings:     %d lines processed despite defects\n", len(report.Warnings))
	}
	if len(report.LowConfidence) > 0 {
		fmt.Printf("Review:       %d low-confidence classifications\n", len(report.LowConfidence))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
