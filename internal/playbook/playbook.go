// Package playbook turns the weakest dimensions of a scored decision into
// a ranked remediation plan.
package playbook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decisio/decisio/internal/outcome"
	"github.com/decisio/decisio/internal/template"
	"github.com/decisio/decisio/pkg/types"
)

// veryLowScore marks a dimension as a standalone risk flag.
const veryLowScore = 3.0

var defaultActions = map[string][]string{
	"Value": {
		"Clarify measurable business impact (revenue, cost, time saved).",
		"Validate customer pain with 5-10 interviews.",
		"Define success metrics and a 30-day experiment.",
	},
	"Feasibility": {
		"Break into milestones and estimate effort for each.",
		"Identify required skills/tools and fill gaps.",
		"Create a small prototype to reduce uncertainty.",
	},
	"Risk": {
		"List top 5 risks (technical, legal, market, delivery).",
		"Add mitigations and owners for each risk.",
		"Run a pre-mortem: why might this fail?",
	},
	"Urgency": {
		"Define deadline and what happens if delayed.",
		"Confirm stakeholder priority against other work.",
		"Set a decision date + fast validation plan.",
	},
}

var genericActions = []string{
	"Define what 'good' looks like for this dimension.",
	"Collect evidence to increase confidence.",
	"Create a small test to improve this score.",
}

var genericChecklist = []string{
	"Confirm decision owner + stakeholders",
	"Write assumptions explicitly",
	"Define success metrics",
	"Run quick validation test",
	"Re-score after fixes",
}

// Build assembles the remediation playbook. Focus dimensions come from the
// explanation's lowest list, falling back to raw lowest scores when no
// explanation is available; at most three are addressed.
func Build(rule template.Rule, scores map[string]float64, outcomeLabel string, explanation *types.Explanation) *types.Playbook {
	var lowDims []string
	if explanation != nil && len(explanation.LowestDimensions) > 0 {
		for _, ds := range explanation.LowestDimensions {
			lowDims = append(lowDims, ds.Dimension)
		}
	} else {
		lowDims = lowestByRawScore(scores)
	}
	if len(lowDims) > 3 {
		lowDims = lowDims[:3]
	}

	actions := make([]types.PlaybookAction, 0, len(lowDims))
	for _, dim := range lowDims {
		recommended := defaultActions[dim]
		if recommended == nil {
			recommended = genericActions
		}
		actions = append(actions, types.PlaybookAction{
			Dimension:          dim,
			Score:              scores[dim],
			RecommendedActions: recommended,
		})
	}

	var flags []string
	for _, dim := range rule.Dimensions {
		if s, ok := scores[dim]; ok && s <= veryLowScore {
			flags = append(flags, fmt.Sprintf("Very low score detected in '%s' (%g).", dim, s))
		}
	}
	if outcome.Normalize(outcomeLabel) != outcome.Go {
		flags = append(flags, "Outcome indicates risk - treat as not approved until fixes are done.")
	}

	return &types.Playbook{
		Summary:         "Top focus areas: " + strings.Join(lowDims, ", "),
		FocusDimensions: lowDims,
		Actions:         actions,
		Flags:           flags,
		Checklist:       genericChecklist,
	}
}

func lowestByRawScore(scores map[string]float64) []string {
	dims := make([]string, 0, len(scores))
	for dim := range scores {
		dims = append(dims, dim)
	}
	sort.SliceStable(dims, func(i, j int) bool {
		if scores[dims[i]] != scores[dims[j]] {
			return scores[dims[i]] < scores[dims[j]]
		}
		return dims[i] < dims[j]
	})
	if len(dims) > 3 {
		dims = dims[:3]
	}
	return dims
}

