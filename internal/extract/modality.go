package extract

import (
	"strings"

	"github.com/ppiankov/attest/internal/annotate"
	"github.com/ppiankov/attest/internal/model"
)

// Modality is the classified modal force of one requirement sentence
type Modality struct {
	Priority   model.Priority
	Negated    bool
	Span       string  // surface modal phrase, e.g. "must not", "could be able to"
	Confidence float64 // 1.0 for exact MoSCoW matches, lower otherwise
}

// Requirement statements are prescriptive by default: anything the
// classifier cannot place lands on MUST with a low confidence, never on a
// failure. Exact confidence values are transparent so the low-confidence
// manifest can explain itself.
const (
	confidenceExact     = 1.0
	confidenceAssumed   = 0.8 // recognized prescriptive verb outside MoSCoW ("shall")
	confidenceDefaulted = 0.3 // no usable modal cue at all
)

// ClassifyModality maps the sentence's modal-verb span to a MoSCoW priority.
// "must not" and "should not" inherit the underlying modal with negated set;
// a bare "will not" is an absolute prohibition and classifies as MUST with
// negated set.
func ClassifyModality(s *annotate.Sentence) Modality {
	span, negated := modalSpan(s)

	switch firstWord(span) {
	case "must":
		return Modality{Priority: model.PriorityMust, Negated: negated, Span: span, Confidence: confidenceExact}
	case "should":
		return Modality{Priority: model.PriorityShould, Negated: negated, Span: span, Confidence: confidenceExact}
	case "could":
		return Modality{Priority: model.PriorityCould, Negated: negated, Span: span, Confidence: confidenceExact}
	case "will":
		if negated {
			return Modality{Priority: model.PriorityMust, Negated: true, Span: span, Confidence: confidenceExact}
		}
		// Bare "will" is a statement of fact, not a MoSCoW priority.
		return Modality{Priority: model.PriorityMust, Negated: false, Span: span, Confidence: confidenceDefaulted}
	case "shall":
		return Modality{Priority: model.PriorityMust, Negated: negated, Span: span, Confidence: confidenceAssumed}
	default:
		return Modality{Priority: model.PriorityMust, Negated: negated, Span: span, Confidence: confidenceDefaulted}
	}
}

// modalSpan collects the surface modal phrase: the first modal auxiliary and
// the particles that belong to it ("not", "be able to")
func modalSpan(s *annotate.Sentence) (string, bool) {
	var words []string
	negated := false

	start := -1
	for i, t := range s.Tokens {
		if t.POS == annotate.POSAux && isModalWord(t.Text) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	for i := start; i < len(s.Tokens); i++ {
		t := s.Tokens[i]
		switch {
		case i == start:
			words = append(words, t.Text)
		case t.Text == "not" || t.Text == "never":
			negated = true
			words = append(words, t.Text)
		case t.Text == "be" || t.Text == "able" || t.Text == "to":
			words = append(words, t.Text)
		default:
			return strings.Join(words, " "), negated
		}
	}
	return strings.Join(words, " "), negated
}

func isModalWord(w string) bool {
	switch w {
	case "must", "should", "could", "will", "shall", "can", "may", "would", "might":
		return true
	}
	return false
}

func firstWord(span string) string {
	if i := strings.IndexByte(span, ' '); i >= 0 {
		return span[:i]
	}
	return span
}
