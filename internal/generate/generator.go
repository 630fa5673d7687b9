// Package generate turns structured requirements into Given/When/Then
// acceptance test cases. Generation is purely template driven and
// deterministic: the same requirements always yield the same cases in the
// same order.
package generate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/attest/internal/model"
	"github.com/ppiankov/attest/internal/network"
)

// Generator renders test cases from requirements, consulting the semantic
// network for containment context in Given clauses
type Generator struct {
	network *network.Network
}

func New(net *network.Network) *Generator {
	return &Generator{network: net}
}

// Generate produces the test cases for all requirements, in requirement
// order. Template selection is exclusive: a negated requirement yields one
// negative case, a constrained requirement one performance case per
// constraint, a qualified requirement one attribute case, anything else one
// positive case. A requirement therefore maps to multiple cases only
// through multiple constraints.
func (g *Generator) Generate(reqs []*model.Requirement) []model.TestCase {
	var cases []model.TestCase
	for _, req := range reqs {
		cases = append(cases, g.casesFor(req)...)
	}
	return cases
}

func (g *Generator) casesFor(req *model.Requirement) []model.TestCase {
	given := g.givenClause(req.Actor)
	when := whenClause(req)

	if req.Negated {
		return []model.TestCase{{
			RequirementID: req.ID,
			Kind:          model.TestNegative,
			Given:         given,
			When:          when,
			Then:          negativeThen(req),
			Priority:      req.Priority,
		}}
	}

	if len(req.Constraints) > 0 {
		cases := make([]model.TestCase, 0, len(req.Constraints))
		for _, c := range req.Constraints {
			cases = append(cases, model.TestCase{
				RequirementID: req.ID,
				Kind:          model.TestPerformance,
				Given:         given,
				When:          when,
				Then:          constraintThen(req, c),
				Priority:      req.Priority,
			})
		}
		return cases
	}

	if len(req.Attributes) > 0 {
		return []model.TestCase{{
			RequirementID: req.ID,
			Kind:          model.TestAttribute,
			Given:         given,
			When:          when,
			Then:          attributeThen(req),
			Priority:      req.Priority,
		}}
	}

	return []model.TestCase{{
		RequirementID: req.ID,
		Kind:          model.TestPositive,
		Given:         given,
		When:          when,
		Then:          positiveThen(req),
		Priority:      req.Priority,
	}}
}

// givenClause anchors the scenario on the actor, naming its container when
// the network knows one
func (g *Generator) givenClause(actor string) string {
	if container := g.network.ContainedBy(actor); container != "" {
		return fmt.Sprintf("Given the %s is part of the %s", actor, container)
	}
	return fmt.Sprintf("Given the %s is present", actor)
}

func whenClause(req *model.Requirement) string {
	// Copular requirements describe a state, so the trigger is rendering
	if req.Action == "be" {
		return fmt.Sprintf("When the %s is rendered", req.Actor)
	}
	action := presentThird(req.Action)
	if req.Target != "" {
		return fmt.Sprintf("When the %s %s the %s", req.Actor, action, req.Target)
	}
	return fmt.Sprintf("When the %s %s", req.Actor, action)
}

func positiveThen(req *model.Requirement) string {
	if req.Containment {
		return fmt.Sprintf("Then the %s is part of the %s", req.Target, req.Actor)
	}
	if req.Action == "have" && req.Target != "" {
		return fmt.Sprintf("Then the %s has the %s", req.Actor, req.Target)
	}
	if req.Target != "" {
		return fmt.Sprintf("Then the %s is %s", req.Target, pastParticiple(req.Action))
	}
	return fmt.Sprintf("Then the %s is able to %s", req.Actor, req.Action)
}

func negativeThen(req *model.Requirement) string {
	if req.Target != "" {
		return fmt.Sprintf("Then the %s is not %s", req.Target, pastParticiple(req.Action))
	}
	if len(req.Attributes) > 0 {
		return fmt.Sprintf("Then the %s is not %s", req.Actor, joinWords(req.Attributes))
	}
	return fmt.Sprintf("Then the %s does not %s", req.Actor, req.Action)
}

func attributeThen(req *model.Requirement) string {
	subject := req.Target
	if subject == "" {
		subject = req.Actor
	}
	return fmt.Sprintf("Then the %s is %s", subject, joinWords(req.Attributes))
}

// constraintThen phrases the measurable bound. Range bounds are inclusive
// on both ends.
func constraintThen(req *model.Requirement, c model.Constraint) string {
	switch c.Kind {
	case model.ConstraintRange:
		return fmt.Sprintf("Then the %s completes in between %s and %s %s, inclusive",
			req.Action, formatNumber(*c.Low), formatNumber(*c.High), c.Unit)
	case model.ConstraintUpperBound:
		return fmt.Sprintf("Then the %s completes in at most %s %s",
			req.Action, formatNumber(*c.High), c.Unit)
	case model.ConstraintLowerBound:
		return fmt.Sprintf("Then the %s completes in at least %s %s",
			req.Action, formatNumber(*c.Low), c.Unit)
	default:
		if c.Unit != "" {
			return fmt.Sprintf("Then exactly %s %s are %s",
				formatNumber(*c.Low), c.Unit, pastParticiple(req.Action))
		}
		return fmt.Sprintf("Then the count equals %s", formatNumber(*c.Low))
	}
}

// presentThird conjugates the first word of a verb phrase into third-person
// singular present
func presentThird(action string) string {
	verb, rest, _ := strings.Cut(action, " ")
	conjugated := conjugate(verb)
	if rest != "" {
		return conjugated + " " + rest
	}
	return conjugated
}

func conjugate(verb string) string {
	switch verb {
	case "have":
		return "has"
	case "be":
		return "is"
	case "do":
		return "does"
	case "go":
		return "goes"
	}
	switch {
	case strings.HasSuffix(verb, "s"), strings.HasSuffix(verb, "x"),
		strings.HasSuffix(verb, "z"), strings.HasSuffix(verb, "ch"),
		strings.HasSuffix(verb, "sh"), strings.HasSuffix(verb, "o"):
		return verb + "es"
	case strings.HasSuffix(verb, "y") && len(verb) > 1 && !isVowel(verb[len(verb)-2]):
		return verb[:len(verb)-1] + "ies"
	default:
		return verb + "s"
	}
}

// pastParticiple forms a regular past participle of the phrase's first verb
func pastParticiple(action string) string {
	verb, _, _ := strings.Cut(action, " ")
	switch verb {
	case "have":
		return "had"
	case "be":
		return "been"
	case "do":
		return "done"
	case "show":
		return "shown"
	}
	switch {
	case strings.HasSuffix(verb, "e"):
		return verb + "d"
	case strings.HasSuffix(verb, "y") && len(verb) > 1 && !isVowel(verb[len(verb)-2]):
		return verb[:len(verb)-1] + "ied"
	default:
		return verb + "ed"
	}
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func joinWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
