package extract

import (
	"github.com/ppiankov/attest/internal/annotate"
	"github.com/ppiankov/attest/internal/model"
)

// ConstraintMatch is a parsed constraint plus the token span it consumed,
// so the extractor can exclude constraint phrases from the action
type ConstraintMatch struct {
	Constraint model.Constraint
	Start      int // first token index of the phrase
	End        int // one past the last token index
}

// timeUnits normalizes recognized measurement units to a plural form
var timeUnits = map[string]string{
	"second": "seconds", "seconds": "seconds",
	"minute": "minutes", "minutes": "minutes",
	"hour": "hours", "hours": "hours",
	"millisecond": "milliseconds", "milliseconds": "milliseconds", "ms": "milliseconds",
	"day": "days", "days": "days",
	"week": "weeks", "weeks": "weeks",
}

// ParseConstraints scans the token sequence for measurable bounds:
//
//	"between 0 and 5 seconds"  -> RANGE(0, 5, seconds)
//	"within 5 seconds"         -> UPPER_BOUND(5, seconds)
//	"at least 3 minutes"       -> LOWER_BOUND(3, minutes)
//	"support 3 languages"      -> CATEGORICAL(3, languages)
//
// A numeric token with a following unit word is the anchor; the surrounding
// bound phrase decides the kind. Numbers with no discernible unit noun pin a
// categorical value with an empty unit.
func ParseConstraints(s *annotate.Sentence) []ConstraintMatch {
	tokens := s.Tokens
	var matches []ConstraintMatch

	for i := 0; i < len(tokens); i++ {
		if tokens[i].POS != annotate.POSNum {
			continue
		}
		value, ok := annotate.NumberValue(tokens[i].Text)
		if !ok {
			continue
		}

		// "between X and Y <unit>"
		if i+2 < len(tokens) && wordAt(tokens, i-1) == "between" && wordAt(tokens, i+1) == "and" &&
			tokens[i+2].POS == annotate.POSNum {
			high, ok := annotate.NumberValue(tokens[i+2].Text)
			if !ok {
				continue
			}
			unit, unitEnd := unitAfter(tokens, i+3)
			low := value
			if low > high {
				low, high = high, low
			}
			matches = append(matches, ConstraintMatch{
				Constraint: model.Constraint{
					Kind: model.ConstraintRange,
					Unit: unit,
					Low:  model.Bound(low),
					High: model.Bound(high),
				},
				Start: i - 1,
				End:   unitEnd,
			})
			i = unitEnd - 1
			continue
		}
		if wordAt(tokens, i-1) == "and" && i >= 2 && tokens[i-2].POS == annotate.POSNum {
			continue // high half of a range already consumed
		}

		unit, unitEnd := unitAfter(tokens, i+1)
		kind, start := boundKind(tokens, i)

		c := model.Constraint{Kind: kind, Unit: unit}
		switch kind {
		case model.ConstraintUpperBound:
			c.High = model.Bound(value)
		case model.ConstraintLowerBound:
			c.Low = model.Bound(value)
		default:
			// No bound phrase: a categorical quantity, pinned on both sides.
			c.Kind = model.ConstraintCategorical
			c.Low = model.Bound(value)
			c.High = model.Bound(value)
		}

		matches = append(matches, ConstraintMatch{Constraint: c, Start: start, End: unitEnd})
		i = unitEnd - 1
	}

	return matches
}

// boundKind inspects the words before the numeric anchor for a bound phrase
// and returns the kind plus the start of the consumed span
func boundKind(tokens []annotate.Token, numIdx int) (model.ConstraintKind, int) {
	prev1 := wordAt(tokens, numIdx-1)
	prev2 := wordAt(tokens, numIdx-2)

	switch prev1 {
	case "within", "under", "below":
		return model.ConstraintUpperBound, numIdx - 1
	case "over", "above", "beyond":
		return model.ConstraintLowerBound, numIdx - 1
	case "most": // "at most"
		if prev2 == "at" {
			return model.ConstraintUpperBound, numIdx - 2
		}
	case "least": // "at least"
		if prev2 == "at" {
			return model.ConstraintLowerBound, numIdx - 2
		}
	case "than":
		switch prev2 {
		case "less", "fewer":
			start := numIdx - 2
			if wordAt(tokens, numIdx-3) == "in" {
				start = numIdx - 3 // "in less than"
			}
			return model.ConstraintUpperBound, start
		case "more", "greater":
			return model.ConstraintLowerBound, numIdx - 2
		}
	}

	// "in 5 seconds" reads as a deadline.
	if prev1 == "in" {
		return model.ConstraintUpperBound, numIdx - 1
	}

	return model.ConstraintCategorical, numIdx
}

// unitAfter resolves the unit noun following a numeric token: recognized
// time units normalize, any other immediate noun is carried verbatim
func unitAfter(tokens []annotate.Token, idx int) (string, int) {
	if idx >= len(tokens) {
		return "", idx
	}
	t := tokens[idx]
	if normalized, ok := timeUnits[t.Text]; ok {
		return normalized, idx + 1
	}
	if t.POS == annotate.POSNoun || t.POS == annotate.POSPropn {
		return t.Text, idx + 1
	}
	return "", idx
}

func wordAt(tokens []annotate.Token, idx int) string {
	if idx < 0 || idx >= len(tokens) {
		return ""
	}
	return tokens[idx].Text
}
