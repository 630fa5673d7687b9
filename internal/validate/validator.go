// Package validate checks a finished report for internal consistency
// before it is rendered or written anywhere.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/attest/internal/model"
)

// Report verifies the structural invariants of a generation run:
// every test case points at an existing requirement and carries its
// priority unchanged, requirement IDs are unique, raw text survives, and
// the line accounting adds up. All violations are reported at once.
func Report(r *model.Report) error {
	var violations []error

	byID := make(map[int]*model.Requirement, len(r.Requirements))
	for i := range r.Requirements {
		req := &r.Requirements[i]
		if _, dup := byID[req.ID]; dup {
			violations = append(violations, fmt.Errorf("requirement %d: duplicate id", req.ID))
		}
		byID[req.ID] = req

		if req.RawText == "" {
			violations = append(violations, fmt.Errorf("requirement %d: raw text lost", req.ID))
		}
		if req.Actor == "" {
			violations = append(violations, fmt.Errorf("requirement %d: empty actor", req.ID))
		}
		if req.Actor != strings.ToLower(req.Actor) {
			violations = append(violations, fmt.Errorf("requirement %d: actor %q is not canonical", req.ID, req.Actor))
		}
		for j, c := range req.Constraints {
			if err := constraint(c); err != nil {
				violations = append(violations, fmt.Errorf("requirement %d: constraint %d: %w", req.ID, j, err))
			}
		}
	}

	for i, tc := range r.TestCases {
		req, ok := byID[tc.RequirementID]
		if !ok {
			violations = append(violations, fmt.Errorf("test case %d: unknown requirement %d", i, tc.RequirementID))
			continue
		}
		if tc.Priority != req.Priority {
			violations = append(violations, fmt.Errorf("test case %d: priority %s does not match requirement %d (%s)",
				i, tc.Priority, req.ID, req.Priority))
		}
		if tc.Given == "" || tc.When == "" || tc.Then == "" {
			violations = append(violations, fmt.Errorf("test case %d: incomplete clauses", i))
		}
	}

	for _, sk := range r.Skipped {
		if _, parsed := byID[sk.ID]; parsed {
			violations = append(violations, fmt.Errorf("line %d: both parsed and skipped", sk.ID))
		}
	}

	if got := len(r.Requirements) + len(r.Skipped); got != r.Stats.Lines {
		violations = append(violations, fmt.Errorf("line accounting: %d parsed + %d skipped != %d lines",
			len(r.Requirements), len(r.Skipped), r.Stats.Lines))
	}

	return errors.Join(violations...)
}

func constraint(c model.Constraint) error {
	switch c.Kind {
	case model.ConstraintRange:
		if c.Low == nil || c.High == nil {
			return errors.New("range missing a bound")
		}
		if *c.Low > *c.High {
			return fmt.Errorf("range bounds inverted: %g > %g", *c.Low, *c.High)
		}
	case model.ConstraintUpperBound:
		if c.High == nil {
			return errors.New("upper bound missing value")
		}
	case model.ConstraintLowerBound:
		if c.Low == nil {
			return errors.New("lower bound missing value")
		}
	case model.ConstraintCategorical:
		if c.Low == nil || c.High == nil || *c.Low != *c.High {
			return errors.New("categorical value not pinned")
		}
	}
	return nil
}
