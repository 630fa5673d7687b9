// Package score summarizes a generation run into plan-health statistics.
package score

import (
	"math"

	"github.com/ppiankov/attest/internal/model"
)

// Confidence bands for the mean modality confidence of parsed lines
const (
	mediumConfidence = 0.5
	highConfidence   = 0.8
)

// Compute derives the report statistics. lines is the number of surviving
// input lines (parsed plus skipped); confidences holds one modality
// confidence per parsed requirement, in requirement order.
func Compute(lines int, reqs []*model.Requirement, confidences []float64, cases []model.TestCase, networkNodes int) model.Stats {
	stats := model.Stats{
		Lines:        lines,
		Parsed:       len(reqs),
		ByPriority:   make(map[string]int),
		ByKind:       make(map[string]int),
		NetworkNodes: networkNodes,
	}

	if lines > 0 {
		stats.Coverage = round2(float64(len(reqs)) / float64(lines))
	}

	for _, req := range reqs {
		stats.ByPriority[req.Priority.String()]++
	}
	for _, tc := range cases {
		stats.ByKind[tc.Kind.String()]++
	}

	stats.Confidence = band(mean(confidences))
	return stats
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func band(confidence float64) string {
	switch {
	case confidence >= highConfidence:
		return "high"
	case confidence >= mediumConfidence:
		return "medium"
	default:
		return "low"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
