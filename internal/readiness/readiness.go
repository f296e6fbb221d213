// Package readiness implements the governance pre-check that gates whether
// a decision may be finalized, independent of its weighted score.
package readiness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decisio/decisio/pkg/types"
)

type Input struct {
	Owner                   string
	DecisionType            string
	DecisionClass           string
	Stakeholders            []string
	Assumptions             []string
	Risks                   []string
	Confidence              types.Confidence
	Weights                 map[string]float64
	ResponsibilityConfirmed bool
}

type Result struct {
	Score       int
	Status      types.ReadinessStatus
	MinRequired int
	Blockers    []string
	Issues      []string
}

// Evaluate runs the single-pass readiness checklist. It never fails:
// malformed inputs become blockers, not errors.
func Evaluate(in Input) Result {
	score := 100
	var blockers, issues []string

	// Completeness and accountability. Both are hard gates.
	if blank(in.Owner) {
		blockers = append(blockers, "Decision owner is missing (accountability not defined).")
	}
	if !in.ResponsibilityConfirmed {
		blockers = append(blockers, "Accountability confirmation is required to approve.")
	}

	// Weight sanity: an evaluation over missing or non-positive weights
	// cannot be trusted at all.
	if len(in.Weights) == 0 {
		blockers = append(blockers, "Template weights are missing/invalid (cannot evaluate reliably).")
	} else if bad := nonPositiveWeights(in.Weights); len(bad) > 0 {
		blockers = append(blockers, fmt.Sprintf("Invalid weights (<=0) found for: %s", strings.Join(bad, ", ")))
	}

	if blankList(in.Assumptions) {
		score -= 10
		issues = append(issues, "Key assumptions are not documented.")
	}
	if blankList(in.Stakeholders) {
		score -= 5
		issues = append(issues, "Stakeholders not listed (visibility may be incomplete).")
	}

	// A numerically high score must not mask a fundamental gap.
	if len(blockers) > 0 && score > 50 {
		score = 50
	}

	// Risk awareness: irreversible decisions require documented risks.
	noRisks := blankList(in.Risks)
	if in.DecisionClass == types.ClassOneWay && noRisks {
		blockers = append(blockers, "One-way decisions require explicit risks/unknowns.")
	} else if in.DecisionClass == types.ClassTwoWay && noRisks {
		score -= 10
		issues = append(issues, "Consider documenting at least one risk/unknown.")
	}

	// Overconfidence: stated confidence must be backed by evidence.
	conf := confidenceNumber(in.Confidence)
	if conf >= 80 && noRisks {
		score -= 20
		issues = append(issues, "High confidence without documented risks suggests overconfidence.")
	}
	if conf >= 70 && blankList(in.Assumptions) {
		score -= 10
		issues = append(issues, "Confidence should be backed by explicit assumptions.")
	}

	minRequired := 60
	if in.DecisionType == types.TypeStrategic && in.DecisionClass == types.ClassOneWay {
		minRequired = 75
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	status := types.ReadinessApprove
	switch {
	case len(blockers) > 0 || score < minRequired:
		status = types.ReadinessBlock
	case score < 75:
		status = types.ReadinessReview
	}

	return Result{
		Score:       score,
		Status:      status,
		MinRequired: minRequired,
		Blockers:    blockers,
		Issues:      issues,
	}
}

func confidenceNumber(conf types.Confidence) int {
	switch conf {
	case types.ConfidenceHigh:
		return 85
	case types.ConfidenceMedium:
		return 70
	case types.ConfidenceLow:
		return 55
	default:
		return 70
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func blankList(items []string) bool {
	for _, it := range items {
		if !blank(it) {
			return false
		}
	}
	return true
}

func nonPositiveWeights(weights map[string]float64) []string {
	var bad []string
	for dim, w := range weights {
		if w <= 0 {
			bad = append(bad, dim)
		}
	}
	sort.Strings(bad)
	return bad
}
