// Package scenario recomputes a decision's outcome under best, expected,
// and worst score deltas.
package scenario

import (
	"github.com/decisio/decisio/internal/scoring"
	"github.com/decisio/decisio/internal/template"
	"github.com/decisio/decisio/pkg/types"
)

// Deltas are free signed inputs; no sign constraint is enforced, so a
// "worst" delta may legally be positive.
type Deltas struct {
	Best     float64
	Expected float64
	Worst    float64
}

// Run perturbs finalScore by each delta, clamps, and reclassifies outcome
// and confidence for each scenario. Spread is best minus worst, rounded to
// two decimals.
func Run(rule template.Rule, finalScore float64, deltas Deltas) *types.StressTest {
	best := scoring.Clamp(finalScore + deltas.Best)
	expected := scoring.Clamp(finalScore + deltas.Expected)
	worst := scoring.Clamp(finalScore + deltas.Worst)

	result := func(score float64) types.ScenarioResult {
		return types.ScenarioResult{
			Score:      score,
			Outcome:    scoring.Outcome(rule, score),
			Confidence: scoring.ConfidenceBand(score),
		}
	}

	return &types.StressTest{
		BestDelta:     deltas.Best,
		ExpectedDelta: deltas.Expected,
		WorstDelta:    deltas.Worst,
		Results: map[string]types.ScenarioResult{
			"best":     result(best),
			"expected": result(expected),
			"worst":    result(worst),
		},
		Spread: scoring.Round2(best - worst),
	}
}
