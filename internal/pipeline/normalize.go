package pipeline

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/attest/internal/model"
)

// Line is one surviving input line, identified by its 0-based position
// among surviving lines
type Line struct {
	ID   int
	Text string
}

// contractions that make a sentence ambiguous to the modality classifier:
// "won't" could be "will not" or "would not", so the line is skipped with
// a reason instead of being guessed at
var contractions = []string{
	"won't", "can't", "shan't", "n't", "'ll", "'ve", "'re", "'d",
}

// Normalize splits raw input into requirement lines. Blank lines and
// comment lines starting with '#' are dropped without record; lines that
// survive but cannot be handed to the extractor are skipped with a reason.
// A missing terminal full stop is cosmetic: the line is processed anyway
// and recorded as a warning. A line's ID is its position among surviving
// lines, so parsed plus skipped always accounts for every ID exactly once.
func Normalize(input string) ([]Line, []model.SkippedLine, []model.LineWarning) {
	var lines []Line
	var skipped []model.SkippedLine
	var warnings []model.LineWarning
	seen := make(map[string]int)

	id := 0
	for _, raw := range strings.Split(input, "\n") {
		text := strings.Join(strings.Fields(raw), " ")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if reason := rejectLine(text); reason != "" {
			skipped = append(skipped, model.SkippedLine{ID: id, RawText: text, Reason: reason})
			id++
			continue
		}

		key := strings.ToLower(strings.TrimSuffix(text, "."))
		if prev, dup := seen[key]; dup {
			skipped = append(skipped, model.SkippedLine{ID: id, RawText: text, Reason: duplicateReason(prev)})
			id++
			continue
		}
		seen[key] = id

		if !strings.HasSuffix(text, ".") {
			warnings = append(warnings, model.LineWarning{ID: id, RawText: text, Reason: "missing full stop"})
		}

		lines = append(lines, Line{ID: id, Text: text})
		id++
	}

	return lines, skipped, warnings
}

func rejectLine(text string) string {
	lower := strings.ToLower(text)
	for _, c := range contractions {
		if strings.Contains(lower, c) {
			return "contains a contraction"
		}
	}
	return ""
}

func duplicateReason(firstID int) string {
	return "duplicate of line " + strconv.Itoa(firstID)
}

// LinesFromHTML extracts requirement lines from an HTML document: every
// list item becomes one candidate line, which then goes through the same
// normalization as plain text input.
func LinesFromHTML(content string) ([]Line, []model.SkippedLine, []model.LineWarning, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, nil, nil, err
	}

	var items []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "li":
				if text := visibleText(n); text != "" {
					items = append(items, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	lines, skipped, warnings := Normalize(strings.Join(items, "\n"))
	return lines, skipped, warnings, nil
}

// visibleText collects the text nodes under n, skipping script/style subtrees
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
