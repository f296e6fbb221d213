package analytics

import (
	"testing"

	"github.com/decisio/decisio/pkg/types"
)

func findInsight(t *testing.T, insights []PatternInsight, decisionType string) PatternInsight {
	t.Helper()
	for _, in := range insights {
		if in.Type == decisionType {
			return in
		}
	}
	t.Fatalf("no insight for %q in %+v", decisionType, insights)
	return PatternInsight{}
}

func TestComputePatternInsightsUnderconfident(t *testing.T) {
	// Low stated confidence but everything succeeded: actual 1.0 vs
	// expected 0.40 is well past the tolerance.
	records := []types.Record{
		rec(func(r *types.Record) {
			r.Confidence = types.ConfidenceLow
			withFollowUp("Success")(r)
		}),
		rec(func(r *types.Record) {
			r.Confidence = types.ConfidenceLow
			withFollowUp("Success")(r)
		}),
	}

	in := findInsight(t, ComputePatternInsights(records), types.TypeOperational)
	if in.Signal != SignalUnderconfident {
		t.Fatalf("signal = %q, want %q", in.Signal, SignalUnderconfident)
	}
	if in.ActualRate == nil || *in.ActualRate != 1.0 {
		t.Fatalf("actual rate = %v, want 1.0", in.ActualRate)
	}
	if in.ExpectedRate == nil || *in.ExpectedRate != 0.40 {
		t.Fatalf("expected rate = %v, want 0.40", in.ExpectedRate)
	}
	if in.CalibrationGap == nil || *in.CalibrationGap != 0.60 {
		t.Fatalf("gap = %v, want 0.60", in.CalibrationGap)
	}
}

func TestComputePatternInsightsOverconfident(t *testing.T) {
	records := []types.Record{
		rec(func(r *types.Record) {
			r.Confidence = types.ConfidenceHigh
			withFollowUp("Failure")(r)
		}),
	}
	in := findInsight(t, ComputePatternInsights(records), types.TypeOperational)
	if in.Signal != SignalOverconfident {
		t.Fatalf("signal = %q, want %q", in.Signal, SignalOverconfident)
	}
}

func TestComputePatternInsightsGapWithinToleranceIsCalibrated(t *testing.T) {
	// Medium confidence with a partial success: actual 0.50 vs expected
	// 0.60 sits exactly on the tolerance boundary.
	records := []types.Record{rec(withFollowUp("Partial Success"))}
	in := findInsight(t, ComputePatternInsights(records), types.TypeOperational)
	if in.Signal != SignalCalibrated {
		t.Fatalf("signal = %q, want %q", in.Signal, SignalCalibrated)
	}
}

func TestComputePatternInsightsNeedFollowUps(t *testing.T) {
	records := []types.Record{
		rec(func(r *types.Record) { r.FinalScore = 6.0 }),
		rec(func(r *types.Record) { r.FinalScore = 8.0 }),
	}
	in := findInsight(t, ComputePatternInsights(records), types.TypeOperational)
	if in.Signal != SignalNeedFollowUps {
		t.Fatalf("signal = %q, want %q", in.Signal, SignalNeedFollowUps)
	}
	if in.ActualRate != nil || in.ExpectedRate != nil || in.CalibrationGap != nil {
		t.Fatalf("rates must be absent without follow-ups: %+v", in)
	}
	if in.AvgScore == nil || *in.AvgScore != 7.0 {
		t.Fatalf("avg score = %v, want 7.0", in.AvgScore)
	}
}

func TestComputePatternInsightsSpreadSkipsPlaceholders(t *testing.T) {
	records := []types.Record{
		rec(withStress(2.0)),
		rec(withStress(4.0)),
		rec(func(r *types.Record) {
			// Migration placeholder: a stress test with no scenario results.
			r.ScenarioStressTest = &types.StressTest{}
		}),
	}
	in := findInsight(t, ComputePatternInsights(records), types.TypeOperational)
	if in.AvgSpread == nil || *in.AvgSpread != 3.0 {
		t.Fatalf("avg spread = %v, want 3.0", in.AvgSpread)
	}
}

func TestComputePatternInsightsBucketsByTypeSorted(t *testing.T) {
	records := []types.Record{
		rec(func(r *types.Record) { r.DecisionType = types.TypeStrategic }),
		rec(func(r *types.Record) { r.DecisionType = types.TypeHiring }),
		rec(func(r *types.Record) { r.DecisionType = "" }),
	}
	insights := ComputePatternInsights(records)
	if len(insights) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(insights))
	}
	if insights[0].Type != types.TypeHiring || insights[1].Type != types.TypeStrategic || insights[2].Type != "Unknown" {
		t.Fatalf("unexpected order: %+v", insights)
	}
}
