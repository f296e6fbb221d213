// Package contract assembles the two executive-facing outputs of an
// evaluation: the validity contract ("stays valid while X, re-evaluate if
// Y") and the headline recommendation.
package contract

import (
	"fmt"
	"strings"

	"github.com/decisio/decisio/internal/outcome"
	"github.com/decisio/decisio/internal/readiness"
	"github.com/decisio/decisio/pkg/types"
)

// Generic invalidation triggers appended to every contract.
var genericTriggers = []string{
	"A material change occurs in budget, timeline, or compliance constraints",
	"New stakeholder constraints emerge that were not consulted during evaluation",
}

// BuildValidity packages assumptions and unknowns into validity conditions.
// At most six of each are carried; blank entries are dropped.
func BuildValidity(assumptions, unknowns []string, reviewDate, decisionClass string) *types.ValidityContract {
	validIf := takeNonBlank(assumptions, 6)

	invalidatesIf := takeNonBlank(unknowns, 6)
	invalidatesIf = append(invalidatesIf, genericTriggers...)

	cadence := "Revisit at the set review date"
	if decisionClass == types.ClassExperimental {
		cadence = "Revisit within 30 days"
	}

	return &types.ValidityContract{
		ValidIf:       validIf,
		InvalidatesIf: invalidatesIf,
		ReviewOn:      reviewDate,
		Cadence:       cadence,
	}
}

// BuildExecutiveRec maps the evaluation outputs into one headline, a short
// rationale, and a seven-day action list.
func BuildExecutiveRec(outcomeLabel string, finalScore float64, confidence types.Confidence, ready readiness.Result, explanation *types.Explanation, playbook *types.Playbook, stress *types.StressTest) *types.ExecutiveRec {
	var headline, tone, summary string
	switch outcome.Normalize(outcomeLabel) {
	case outcome.Go:
		headline = "Recommendation: Proceed (GO)"
		tone = "good"
		summary = "Approve and execute with clear owners, milestones, and risk controls."
	case outcome.Review:
		headline = "Recommendation: Proceed with revisions (REVIEW)"
		tone = "warn"
		summary = "Move forward only after addressing the key blockers and tightening assumptions."
	default:
		headline = "Recommendation: Do not proceed (NO-GO)"
		tone = "bad"
		summary = "Stop or redesign the decision. Current risk / feasibility profile is not acceptable."
	}

	var rationalePos, rationaleNeg []string
	if explanation != nil {
		for _, c := range cap3(explanation.TopPositiveContributors) {
			rationalePos = append(rationalePos, fmt.Sprintf("%s: strong signal (%g)", c.Dimension, c.Weighted))
		}
		for _, c := range cap3(explanation.TopNegativeContributors) {
			rationaleNeg = append(rationaleNeg, fmt.Sprintf("%s: drag / risk (%g)", c.Dimension, c.Weighted))
		}
	}

	var nextSteps, flags []string
	if playbook != nil {
		actions := playbook.Actions
		if len(actions) > 3 {
			actions = actions[:3]
		}
		for _, a := range actions {
			if a.Dimension != "" && len(a.RecommendedActions) > 0 {
				nextSteps = append(nextSteps, fmt.Sprintf("%s: %s", a.Dimension, a.RecommendedActions[0]))
			}
		}
		flags = playbook.Flags
		if len(flags) > 6 {
			flags = flags[:6]
		}
	}

	stressNote := ""
	if stress != nil {
		stressNote = fmt.Sprintf("Scenario spread (Best-Worst): %g", stress.Spread)
	}

	return &types.ExecutiveRec{
		Headline:          headline,
		Tone:              tone,
		Summary:           summary,
		ScoreLine:         fmt.Sprintf("Final score: %g / 10 | Confidence: %s | Readiness: %d%% (%s)", finalScore, confidence, ready.Score, ready.Status),
		RationalePositive: rationalePos,
		RationaleNegative: rationaleNeg,
		NextSteps7d:       nextSteps,
		RiskFlags:         flags,
		StressNote:        stressNote,
	}
}

func cap3(items []types.Contribution) []types.Contribution {
	if len(items) > 3 {
		return items[:3]
	}
	return items
}

func takeNonBlank(items []string, limit int) []string {
	var out []string
	for _, it := range items {
		if len(out) == limit {
			break
		}
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}
