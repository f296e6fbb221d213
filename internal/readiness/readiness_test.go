package readiness

import (
	"strings"
	"testing"

	"github.com/decisio/decisio/pkg/types"
)

func validWeights() map[string]float64 {
	return map[string]float64{"Value": 0.5, "Risk": 0.5}
}

func TestMissingAccountabilityBlocksOneWay(t *testing.T) {
	res := Evaluate(Input{
		Owner:         "",
		DecisionType:  types.TypeStrategic,
		DecisionClass: types.ClassOneWay,
		Weights:       validWeights(),
		Confidence:    types.ConfidenceMedium,
	})
	if res.Status != types.ReadinessBlock {
		t.Fatalf("expected BLOCK, got %s", res.Status)
	}
	if len(res.Blockers) < 2 {
		t.Fatalf("expected at least 2 blockers, got %d: %v", len(res.Blockers), res.Blockers)
	}
	if res.Score > 50 {
		t.Fatalf("blocked score must be capped at 50, got %d", res.Score)
	}
}

func TestWellFormedTwoWayApproves(t *testing.T) {
	res := Evaluate(Input{
		Owner:                   "Jordan",
		DecisionType:            types.TypeOperational,
		DecisionClass:           types.ClassTwoWay,
		Stakeholders:            []string{"Finance"},
		Assumptions:             []string{"Budget holds through Q4"},
		Risks:                   []string{"Vendor lock-in"},
		Confidence:              types.ConfidenceMedium,
		Weights:                 validWeights(),
		ResponsibilityConfirmed: true,
	})
	if res.Status != types.ReadinessApprove {
		t.Fatalf("expected APPROVE, got %s (score %d, blockers %v)", res.Status, res.Score, res.Blockers)
	}
	if res.Score < 75 {
		t.Fatalf("expected score >= 75, got %d", res.Score)
	}
	if res.MinRequired != 60 {
		t.Fatalf("expected min 60 for non one-way strategic, got %d", res.MinRequired)
	}
}

func TestStrategicOneWayRequires75(t *testing.T) {
	res := Evaluate(Input{
		Owner:                   "Jordan",
		DecisionType:            types.TypeStrategic,
		DecisionClass:           types.ClassOneWay,
		Stakeholders:            []string{"Finance"},
		Assumptions:             []string{"a"},
		Risks:                   []string{"r"},
		Confidence:              types.ConfidenceMedium,
		Weights:                 validWeights(),
		ResponsibilityConfirmed: true,
	})
	if res.MinRequired != 75 {
		t.Fatalf("expected min 75, got %d", res.MinRequired)
	}
}

func TestOneWayWithoutRisksIsBlocked(t *testing.T) {
	res := Evaluate(Input{
		Owner:                   "Jordan",
		DecisionType:            types.TypeOperational,
		DecisionClass:           types.ClassOneWay,
		Stakeholders:            []string{"Ops"},
		Assumptions:             []string{"a"},
		Confidence:              types.ConfidenceLow,
		Weights:                 validWeights(),
		ResponsibilityConfirmed: true,
	})
	if res.Status != types.ReadinessBlock {
		t.Fatalf("expected BLOCK, got %s", res.Status)
	}
	found := false
	for _, b := range res.Blockers {
		if strings.Contains(b, "One-way") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected one-way risk blocker, got %v", res.Blockers)
	}
}

func TestTwoWayWithoutRisksIsAdvisory(t *testing.T) {
	res := Evaluate(Input{
		Owner:                   "Jordan",
		DecisionType:            types.TypeOperational,
		DecisionClass:           types.ClassTwoWay,
		Stakeholders:            []string{"Ops"},
		Assumptions:             []string{"a"},
		Confidence:              types.ConfidenceLow,
		Weights:                 validWeights(),
		ResponsibilityConfirmed: true,
	})
	if len(res.Blockers) != 0 {
		t.Fatalf("expected no blockers, got %v", res.Blockers)
	}
	if res.Score != 90 {
		t.Fatalf("expected 90 after -10 risk issue, got %d", res.Score)
	}
}

func TestOverconfidencePenalties(t *testing.T) {
	// High confidence, no risks, no assumptions: -20 and -10 on top of
	// the -10 assumptions and -10 two-way risk issues.
	res := Evaluate(Input{
		Owner:                   "Jordan",
		DecisionType:            types.TypeOperational,
		DecisionClass:           types.ClassTwoWay,
		Stakeholders:            []string{"Ops"},
		Confidence:              types.ConfidenceHigh,
		Weights:                 validWeights(),
		ResponsibilityConfirmed: true,
	})
	if res.Score != 50 {
		t.Fatalf("expected 50, got %d", res.Score)
	}
	if res.Status != types.ReadinessBlock {
		t.Fatalf("expected BLOCK below min bar, got %s", res.Status)
	}
}

func TestInvalidWeightsAreBlockersNotErrors(t *testing.T) {
	res := Evaluate(Input{
		Owner:                   "Jordan",
		DecisionType:            types.TypeOperational,
		DecisionClass:           types.ClassTwoWay,
		Stakeholders:            []string{"Ops"},
		Assumptions:             []string{"a"},
		Risks:                   []string{"r"},
		Confidence:              types.ConfidenceMedium,
		Weights:                 map[string]float64{"Value": 0.5, "Risk": -1},
		ResponsibilityConfirmed: true,
	})
	if res.Status != types.ReadinessBlock {
		t.Fatalf("expected BLOCK, got %s", res.Status)
	}
	found := false
	for _, b := range res.Blockers {
		if strings.Contains(b, "Invalid weights") && strings.Contains(b, "Risk") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected invalid-weights blocker naming Risk, got %v", res.Blockers)
	}
}

func TestWhitespaceOnlyFieldsCountAsEmpty(t *testing.T) {
	res := Evaluate(Input{
		Owner:                   "   ",
		DecisionType:            types.TypeOperational,
		DecisionClass:           types.ClassTwoWay,
		Stakeholders:            []string{"  "},
		Assumptions:             []string{""},
		Risks:                   []string{"r"},
		Confidence:              types.ConfidenceMedium,
		Weights:                 validWeights(),
		ResponsibilityConfirmed: true,
	})
	if res.Status != types.ReadinessBlock {
		t.Fatalf("blank owner must block, got %s", res.Status)
	}
	if len(res.Issues) < 2 {
		t.Fatalf("blank assumptions and stakeholders should issue, got %v", res.Issues)
	}
}

func TestScoreClampedToZero(t *testing.T) {
	res := Evaluate(Input{
		DecisionType:  types.TypeOperational,
		DecisionClass: types.ClassTwoWay,
		Confidence:    types.ConfidenceHigh,
		Weights:       validWeights(),
	})
	if res.Score < 0 || res.Score > 100 {
		t.Fatalf("score out of band: %d", res.Score)
	}
}
