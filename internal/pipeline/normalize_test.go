package pipeline

import (
	"testing"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	lines, skipped, _ := Normalize("The   GUI\tmust  display a product.")
	if len(skipped) != 0 {
		t.Fatalf("Expected no skips, got %v", skipped)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "The GUI must display a product." {
		t.Errorf("Unexpected text: %q", lines[0].Text)
	}
}

func TestNormalize_DropsBlanksAndComments(t *testing.T) {
	input := "# requirements for the storefront\n\nThe GUI must display a product.\n   \n# trailing comment\n"
	lines, skipped, _ := Normalize(input)
	if len(skipped) != 0 {
		t.Fatalf("Expected no skips, got %v", skipped)
	}
	if len(lines) != 1 || lines[0].ID != 0 {
		t.Fatalf("Expected a single line with id 0, got %+v", lines)
	}
}

func TestNormalize_RejectsContraction(t *testing.T) {
	lines, skipped, _ := Normalize("The footer won't display a notice.")
	if len(lines) != 0 {
		t.Fatalf("Expected no surviving lines, got %+v", lines)
	}
	if len(skipped) != 1 {
		t.Fatalf("Expected 1 skip, got %d", len(skipped))
	}
	if skipped[0].Reason != "contains a contraction" {
		t.Errorf("Unexpected reason: %q", skipped[0].Reason)
	}
}

func TestNormalize_WarnsMissingFullStop(t *testing.T) {
	lines, skipped, warnings := Normalize("The GUI must display a product")

	// The defect is cosmetic: the line still gets processed
	if len(skipped) != 0 {
		t.Fatalf("Expected no skips, got %+v", skipped)
	}
	if len(lines) != 1 || lines[0].Text != "The GUI must display a product" {
		t.Fatalf("Expected the line to survive, got %+v", lines)
	}
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %+v", warnings)
	}
	if warnings[0].ID != 0 || warnings[0].Reason != "missing full stop" {
		t.Errorf("Unexpected warning: %+v", warnings[0])
	}
}

func TestNormalize_SkipsDuplicates(t *testing.T) {
	input := "The GUI must display a product.\nThe gui must display a product.\nThe GUI must display a product\n"
	lines, skipped, warnings := Normalize(input)

	if len(lines) != 1 {
		t.Fatalf("Expected 1 surviving line, got %d", len(lines))
	}
	if len(skipped) != 2 {
		t.Fatalf("Expected 2 skips, got %d", len(skipped))
	}
	// Neither case nor a trailing period makes a line distinct
	if skipped[0].ID != 1 || skipped[0].Reason != "duplicate of line 0" {
		t.Errorf("Unexpected first skip: %+v", skipped[0])
	}
	if skipped[1].ID != 2 || skipped[1].Reason != "duplicate of line 0" {
		t.Errorf("Unexpected second skip: %+v", skipped[1])
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings for skipped duplicates, got %+v", warnings)
	}
}

func TestNormalize_IDsAccountForSkips(t *testing.T) {
	input := "The GUI must display a product.\nIt won't work.\nThe footer must display a notice.\n"
	lines, skipped, _ := Normalize(input)

	if len(lines) != 2 || len(skipped) != 1 {
		t.Fatalf("Expected 2 lines and 1 skip, got %d and %d", len(lines), len(skipped))
	}
	if lines[0].ID != 0 || skipped[0].ID != 1 || lines[1].ID != 2 {
		t.Errorf("IDs must cover positions without gaps: lines %+v, skipped %+v", lines, skipped)
	}
}

func TestLinesFromHTML(t *testing.T) {
	content := `<html><body>
		<h1>Requirements</h1>
		<script>var x = "The system must never run.";</script>
		<ul>
			<li>The GUI must display a product.</li>
			<li>The footer must display a notice.</li>
			<li></li>
		</ul>
		<p>Prose outside lists is ignored.</p>
	</body></html>`

	lines, skipped, _, err := LinesFromHTML(content)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("Expected no skips, got %+v", skipped)
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "The GUI must display a product." {
		t.Errorf("Unexpected first line: %q", lines[0].Text)
	}
	if lines[1].Text != "The footer must display a notice." {
		t.Errorf("Unexpected second line: %q", lines[1].Text)
	}
}

func TestLinesFromHTML_MalformedStillParses(t *testing.T) {
	lines, _, _, err := LinesFromHTML("<ul><li>The GUI must display a product.")
	if err != nil {
		t.Fatalf("Expected lenient parsing, got %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
}
