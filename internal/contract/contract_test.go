package contract

import (
	"strings"
	"testing"

	"github.com/decisio/decisio/internal/readiness"
	"github.com/decisio/decisio/pkg/types"
)

func TestBuildValidityCapsAndAppendsTriggers(t *testing.T) {
	assumptions := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}
	unknowns := []string{"u1", " ", "u2"}

	vc := BuildValidity(assumptions, unknowns, "2026-10-01", types.ClassTwoWay)
	if len(vc.ValidIf) != 6 {
		t.Fatalf("expected 6 valid-if conditions, got %d", len(vc.ValidIf))
	}
	// 2 non-blank unknowns + 2 generic triggers.
	if len(vc.InvalidatesIf) != 4 {
		t.Fatalf("expected 4 invalidates-if conditions, got %v", vc.InvalidatesIf)
	}
	last := vc.InvalidatesIf[len(vc.InvalidatesIf)-1]
	if !strings.Contains(last, "stakeholder constraints") {
		t.Fatalf("generic triggers missing: %v", vc.InvalidatesIf)
	}
	if vc.ReviewOn != "2026-10-01" {
		t.Fatalf("unexpected review date: %s", vc.ReviewOn)
	}
	if vc.Cadence != "Revisit at the set review date" {
		t.Fatalf("unexpected cadence: %s", vc.Cadence)
	}
}

func TestBuildValidityExperimentalCadence(t *testing.T) {
	vc := BuildValidity(nil, nil, "", types.ClassExperimental)
	if vc.Cadence != "Revisit within 30 days" {
		t.Fatalf("unexpected cadence: %s", vc.Cadence)
	}
}

func TestBuildExecutiveRecHeadlines(t *testing.T) {
	ready := readiness.Result{Score: 80, Status: types.ReadinessApprove}
	cases := []struct {
		outcome string
		tone    string
	}{
		{"PROCEED", "good"},
		{"REVIEW / REVISE", "warn"},
		{"DO NOT PROCEED", "bad"},
	}
	for _, tc := range cases {
		rec := BuildExecutiveRec(tc.outcome, 7.0, types.ConfidenceMedium, ready, nil, nil, nil)
		if rec.Tone != tc.tone {
			t.Fatalf("outcome %s: expected tone %s, got %s", tc.outcome, tc.tone, rec.Tone)
		}
		if rec.Headline == "" || rec.Summary == "" {
			t.Fatalf("outcome %s: empty headline/summary", tc.outcome)
		}
	}
}

func TestBuildExecutiveRecAssemblesRationaleAndSteps(t *testing.T) {
	exp := &types.Explanation{
		TopPositiveContributors: []types.Contribution{
			{Dimension: "Value", Weighted: 2.0},
			{Dimension: "Alignment", Weighted: 1.8},
			{Dimension: "Feasibility", Weighted: 1.75},
			{Dimension: "Risk", Weighted: 1.2},
		},
		TopNegativeContributors: []types.Contribution{{Dimension: "Urgency", Weighted: 0.5}},
	}
	book := &types.Playbook{
		Actions: []types.PlaybookAction{
			{Dimension: "Urgency", RecommendedActions: []string{"Define deadline.", "Confirm priority."}},
			{Dimension: "Risk", RecommendedActions: []string{"List top risks."}},
		},
		Flags: []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7"},
	}
	sst := &types.StressTest{Spread: 2.5}
	ready := readiness.Result{Score: 85, Status: types.ReadinessApprove}

	rec := BuildExecutiveRec("PROCEED", 7.25, types.ConfidenceMedium, ready, exp, book, sst)
	if len(rec.RationalePositive) != 3 {
		t.Fatalf("positive rationale capped at 3, got %v", rec.RationalePositive)
	}
	if !strings.Contains(rec.RationalePositive[0], "Value") {
		t.Fatalf("unexpected rationale: %v", rec.RationalePositive)
	}
	if len(rec.NextSteps7d) != 2 || !strings.Contains(rec.NextSteps7d[0], "Define deadline.") {
		t.Fatalf("unexpected next steps: %v", rec.NextSteps7d)
	}
	if len(rec.RiskFlags) != 6 {
		t.Fatalf("risk flags capped at 6, got %d", len(rec.RiskFlags))
	}
	if !strings.Contains(rec.StressNote, "2.5") {
		t.Fatalf("stress note missing spread: %s", rec.StressNote)
	}
	if !strings.Contains(rec.ScoreLine, "7.25") || !strings.Contains(rec.ScoreLine, "85%") {
		t.Fatalf("unexpected score line: %s", rec.ScoreLine)
	}
}
