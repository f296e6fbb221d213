package analytics

import (
	"sort"

	"github.com/decisio/decisio/internal/outcome"
	"github.com/decisio/decisio/internal/scoring"
	"github.com/decisio/decisio/pkg/types"
)

// Calibration signals per decision-type bucket.
const (
	SignalUnderconfident = "UNDERCONFIDENT"
	SignalOverconfident  = "OVERCONFIDENT"
	SignalCalibrated     = "CALIBRATED"
	SignalNeedFollowUps  = "NEED FOLLOW-UPS"
)

// calibrationTolerance is the gap beyond which a bucket is flagged as
// mis-calibrated in either direction.
const calibrationTolerance = 0.10

type PatternInsight struct {
	Type           string   `json:"type"`
	Decisions      int      `json:"decisions"`
	FollowUps      int      `json:"follow_ups"`
	AvgScore       *float64 `json:"avg_score"`
	AvgSpread      *float64 `json:"avg_spread"`
	ActualRate     *float64 `json:"actual_success_rate"`
	ExpectedRate   *float64 `json:"expected_rate"`
	CalibrationGap *float64 `json:"calibration_gap"`
	Signal         string   `json:"signal"`
}

// ComputePatternInsights buckets records by decision type and compares the
// actual follow-up success rate against the rate implied by stated
// confidence. Buckets without any follow-up are flagged instead of scored.
func ComputePatternInsights(records []types.Record) []PatternInsight {
	type bucket struct {
		count      int
		scoreSum   float64
		scoreN     int
		spreadSum  float64
		spreadN    int
		followUps  int
		successSum float64
		confSum    float64
	}

	byType := map[string]*bucket{}
	for _, r := range records {
		t := orUnknown(r.DecisionType)
		b := byType[t]
		if b == nil {
			b = &bucket{}
			byType[t] = b
		}
		b.count++
		if hasFinalScore(r) {
			b.scoreSum += r.FinalScore
			b.scoreN++
		}

		if hasSpread(r.ScenarioStressTest) {
			b.spreadSum += r.ScenarioStressTest.Spread
			b.spreadN++
		}

		if r.FollowUp != nil {
			if actual, ok := outcome.SuccessValue(r.FollowUp.Outcome); ok {
				b.followUps++
				b.successSum += actual
				b.confSum += expectedSuccess(r.Confidence)
			}
		}
	}

	insights := make([]PatternInsight, 0, len(byType))
	for t, b := range byType {
		insight := PatternInsight{Type: t, Decisions: b.count, FollowUps: b.followUps}
		if b.scoreN > 0 {
			avg := scoring.Round2(b.scoreSum / float64(b.scoreN))
			insight.AvgScore = &avg
		}
		if b.spreadN > 0 {
			avg := scoring.Round2(b.spreadSum / float64(b.spreadN))
			insight.AvgSpread = &avg
		}

		if b.followUps > 0 {
			actual := b.successSum / float64(b.followUps)
			expected := b.confSum / float64(b.followUps)
			gap := actual - expected

			actualR := scoring.Round2(actual)
			expectedR := scoring.Round2(expected)
			gapR := scoring.Round2(gap)
			insight.ActualRate = &actualR
			insight.ExpectedRate = &expectedR
			insight.CalibrationGap = &gapR

			switch {
			case gap > calibrationTolerance:
				insight.Signal = SignalUnderconfident
			case gap < -calibrationTolerance:
				insight.Signal = SignalOverconfident
			default:
				insight.Signal = SignalCalibrated
			}
		} else {
			insight.Signal = SignalNeedFollowUps
		}
		insights = append(insights, insight)
	}

	sort.Slice(insights, func(i, j int) bool { return insights[i].Type < insights[j].Type })
	return insights
}

// expectedSuccess converts a stated confidence band into an implied
// success probability.
func expectedSuccess(conf types.Confidence) float64 {
	switch conf {
	case types.ConfidenceHigh:
		return 0.80
	case types.ConfidenceMedium:
		return 0.60
	case types.ConfidenceLow:
		return 0.40
	default:
		return 0.60
	}
}
