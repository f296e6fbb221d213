package analytics

import (
	"math"

	"github.com/decisio/decisio/internal/outcome"
	"github.com/decisio/decisio/pkg/types"
)

type Calibration struct {
	Overconfident  int `json:"overconfident"`
	Underconfident int `json:"underconfident"`
	Calibrated     int `json:"calibrated"`
}

// AccuracyMetrics is a confusion count over records carrying a follow-up.
// FP counts false GO decisions, FN false NO-GO decisions. Records where
// either the prediction or the actual result is ambiguous land in the
// review bucket and are excluded from the strict accuracy ratio.
type AccuracyMetrics struct {
	FollowUpsTotal int         `json:"followups_total"`
	TP             int         `json:"tp"`
	FP             int         `json:"fp"`
	TN             int         `json:"tn"`
	FN             int         `json:"fn"`
	ReviewBucket   int         `json:"review_bucket"`
	TotalStrict    int         `json:"total_strict"`
	Accuracy       *float64    `json:"accuracy"`
	Calibration    Calibration `json:"calibration"`
}

// ComputeAccuracyMetrics compares predicted outcomes against follow-up
// results. Confidence calibration is tallied only when the actual result
// is unambiguously positive or negative.
func ComputeAccuracyMetrics(records []types.Record) AccuracyMetrics {
	var m AccuracyMetrics

	for _, r := range records {
		if r.FollowUp == nil {
			continue
		}
		m.FollowUpsTotal++

		pred := predictedPolarity(outcome.Normalize(r.Outcome))
		actual := outcome.NormalizeFollowUp(r.FollowUp.Outcome)

		if pred == outcome.Mixed || actual == outcome.Mixed {
			m.ReviewBucket++
		} else {
			switch {
			case pred == outcome.Positive && actual == outcome.Positive:
				m.TP++
			case pred == outcome.Positive && actual == outcome.Negative:
				m.FP++
			case pred == outcome.Negative && actual == outcome.Negative:
				m.TN++
			case pred == outcome.Negative && actual == outcome.Positive:
				m.FN++
			}
		}

		if actual == outcome.Positive || actual == outcome.Negative {
			switch {
			case r.Confidence == types.ConfidenceHigh && actual == outcome.Negative:
				m.Calibration.Overconfident++
			case r.Confidence == types.ConfidenceLow && actual == outcome.Positive:
				m.Calibration.Underconfident++
			default:
				m.Calibration.Calibrated++
			}
		}
	}

	m.TotalStrict = m.TP + m.TN + m.FP + m.FN
	if m.TotalStrict > 0 {
		acc := round3(float64(m.TP+m.TN) / float64(m.TotalStrict))
		m.Accuracy = &acc
	}
	return m
}

func predictedPolarity(kind outcome.Kind) outcome.Polarity {
	switch kind {
	case outcome.Go:
		return outcome.Positive
	case outcome.NoGo:
		return outcome.Negative
	default:
		return outcome.Mixed
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
