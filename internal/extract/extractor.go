package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/attest/internal/annotate"
	"github.com/ppiankov/attest/internal/model"
)

// Extractor turns one annotated requirement sentence into a structured
// Requirement. It is stateless and safe for concurrent use as long as the
// underlying annotator is.
type Extractor struct {
	annotator annotate.Annotator
}

func New(annotator annotate.Annotator) *Extractor {
	return &Extractor{annotator: annotator}
}

// Extract parses a single requirement line. The returned Modality carries
// the classifier confidence so callers can route low-confidence lines to
// the review manifest; the Requirement itself never stores confidence.
func (e *Extractor) Extract(ctx context.Context, id int, text string) (*model.Requirement, Modality, error) {
	s, err := e.annotator.Annotate(ctx, text)
	if err != nil {
		// Cancellation is run-scoped; any other annotator failure only
		// loses this line.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, Modality{}, fmt.Errorf("annotating line %d: %w", id, err)
		}
		return nil, Modality{}, &UnparseableError{
			LineID:  id,
			RawText: text,
			Reason:  fmt.Sprintf("annotation failed: %v", err),
			Err:     err,
		}
	}

	root := s.Root()
	if root < 0 {
		return nil, Modality{}, &UnparseableError{LineID: id, RawText: text, Reason: "no main verb found"}
	}
	subj := s.Child(root, annotate.DepNsubj)
	if subj < 0 {
		return nil, Modality{}, &UnparseableError{LineID: id, RawText: text, Reason: "no subject found"}
	}

	mod := ClassifyModality(s)
	constraints := ParseConstraints(s)

	req := &model.Requirement{
		ID:       id,
		RawText:  text,
		Actor:    nounPhrase(s, subj),
		Priority: mod.Priority,
		Negated:  mod.Negated,
		Action:   s.Tokens[root].Lemma,
	}
	for _, m := range constraints {
		req.Constraints = append(req.Constraints, m.Constraint)
	}

	if obj := s.Child(root, annotate.DepDobj); obj >= 0 {
		req.Target = nounPhrase(s, obj)
		req.Attributes = adjectives(s, obj)
	} else if prep := freePrep(s, root, constraints); prep >= 0 {
		// Intransitive verb with a prepositional complement that no
		// constraint consumed: fold the phrase into the action so
		// "adapt to screen size change" stays one behavior.
		if pobj := s.Child(prep, annotate.DepPobj); pobj >= 0 {
			req.Action = req.Action + " " + s.Tokens[prep].Text + " " + nounPhrase(s, pobj)
		}
	}

	req.Attributes = append(req.Attributes, complements(s, root)...)

	// "X must have a Y" with no qualifiers asserts structure, not behavior.
	if req.Action == "have" && req.Target != "" && len(req.Attributes) == 0 {
		req.Containment = true
	}

	return req, mod, nil
}

// nounPhrase renders the canonical entity name rooted at head: compound
// modifiers in token order plus the singularized head word. Determiners,
// adjectives and numbers are dropped so "the product pages" and
// "a Product Page" resolve to the same node.
func nounPhrase(s *annotate.Sentence, head int) string {
	indexes := s.Children(head, annotate.DepCompound)
	indexes = append(indexes, head)

	words := make([]string, 0, len(indexes))
	for _, i := range indexes {
		words = append(words, s.Tokens[i].Text)
	}
	words[len(words)-1] = annotate.Singularize(words[len(words)-1])
	return strings.Join(words, " ")
}

// adjectives collects the amod qualifiers of a noun in token order
func adjectives(s *annotate.Sentence, head int) []string {
	var attrs []string
	for _, i := range s.Children(head, annotate.DepAmod) {
		attrs = append(attrs, s.Tokens[i].Text)
	}
	return attrs
}

// complements collects adjectival complements of the root verb, covering
// the "must be responsive" shape where the quality attaches to the actor
func complements(s *annotate.Sentence, root int) []string {
	var attrs []string
	for _, i := range s.Children(root, annotate.DepAcomp) {
		attrs = append(attrs, s.Tokens[i].Text)
	}
	return attrs
}

// freePrep returns the first prep child of root that lies outside every
// parsed constraint span, or -1
func freePrep(s *annotate.Sentence, root int, constraints []ConstraintMatch) int {
	for _, i := range s.Children(root, annotate.DepPrep) {
		consumed := false
		for _, m := range constraints {
			if i >= m.Start && i < m.End {
				consumed = true
				break
			}
		}
		if !consumed {
			return i
		}
	}
	return -1
}
