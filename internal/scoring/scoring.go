package scoring

import (
	"math"

	"github.com/decisio/decisio/internal/template"
	"github.com/decisio/decisio/pkg/types"
)

const (
	EngineVersion  = "0.1.0"
	RulesetVersion = "0.1.0"
)

// Clamp limits a raw dimension or final score to the [0, 10] band.
func Clamp(score float64) float64 {
	return math.Max(0.0, math.Min(10.0, score))
}

// Round2 rounds to two decimals, the precision of every persisted score.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WeightedScore computes the weighted sum over the rule's dimensions.
// Missing dimension scores default to 0. The result is sensitive to the
// weight scale chosen by the template author; weights are not normalized.
func WeightedScore(rule template.Rule, scores map[string]float64) float64 {
	total := 0.0
	for _, dim := range rule.Dimensions {
		total += Clamp(scores[dim]) * rule.Weights[dim]
	}
	return Round2(total)
}

// Outcome returns the label of the first threshold whose minimum is at or
// below finalScore. Thresholds are normalized to descending order at
// registration, so the last entry's label is the catch-all fallback.
func Outcome(rule template.Rule, finalScore float64) string {
	for _, th := range rule.Thresholds {
		if finalScore >= th.Min {
			return th.Label
		}
	}
	return rule.Thresholds[len(rule.Thresholds)-1].Label
}

// ConfidenceBand classifies the un-perturbed final score.
func ConfidenceBand(score float64) types.Confidence {
	switch {
	case score >= 8.0:
		return types.ConfidenceHigh
	case score >= 6.0:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}
