// Package analytics aggregates decision history into distributions,
// calibration measures, and template-level recommendations. Every function
// is a pure pass over an in-memory record list.
package analytics

import (
	"sort"

	"github.com/decisio/decisio/internal/scoring"
	"github.com/decisio/decisio/pkg/types"
)

type WeakDimension struct {
	Dimension string `json:"dimension"`
	Count     int    `json:"count"`
}

type Metrics struct {
	Total            int             `json:"total"`
	Outcomes         map[string]int  `json:"outcomes"`
	AvgScore         *float64        `json:"avg_score"`
	Confidence       map[string]int  `json:"confidence"`
	FollowUpOutcomes map[string]int  `json:"followup_outcomes"`
	WeakDimensions   []WeakDimension `json:"weak_dimensions"`
}

// ComputeMetrics builds the overview: outcome and confidence histograms,
// average final score, follow-up outcome histogram, and the ten most
// frequent weak dimensions (drawn from each record's lowest-dimension
// explanation).
func ComputeMetrics(records []types.Record) Metrics {
	m := Metrics{
		Outcomes:         map[string]int{},
		Confidence:       map[string]int{},
		FollowUpOutcomes: map[string]int{},
		WeakDimensions:   []WeakDimension{},
	}
	m.Total = len(records)
	if m.Total == 0 {
		return m
	}

	scoreSum := 0.0
	scoreN := 0
	weak := map[string]int{}
	for _, r := range records {
		m.Outcomes[orUnknown(r.Outcome)]++
		m.Confidence[orUnknown(string(r.Confidence))]++

		if hasFinalScore(r) {
			scoreSum += r.FinalScore
			scoreN++
		}

		if r.FollowUp != nil {
			m.FollowUpOutcomes[orUnknown(r.FollowUp.Outcome)]++
		}
		if r.Explanation != nil {
			for _, ds := range r.Explanation.LowestDimensions {
				if ds.Dimension != "" {
					weak[ds.Dimension]++
				}
			}
		}
	}

	if scoreN > 0 {
		avg := scoring.Round2(scoreSum / float64(scoreN))
		m.AvgScore = &avg
	}

	for dim, count := range weak {
		m.WeakDimensions = append(m.WeakDimensions, WeakDimension{Dimension: dim, Count: count})
	}
	sort.Slice(m.WeakDimensions, func(i, j int) bool {
		if m.WeakDimensions[i].Count != m.WeakDimensions[j].Count {
			return m.WeakDimensions[i].Count > m.WeakDimensions[j].Count
		}
		return m.WeakDimensions[i].Dimension < m.WeakDimensions[j].Dimension
	})
	if len(m.WeakDimensions) > 10 {
		m.WeakDimensions = m.WeakDimensions[:10]
	}
	return m
}

// hasFinalScore reports whether a record carries a real score. Legacy rows
// written before scoring decode final_score as 0 and have no scores map;
// they must not drag the average down.
func hasFinalScore(r types.Record) bool {
	return r.FinalScore != 0 || len(r.Scores) > 0
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// hasSpread reports whether a stress test carries real scenario data. A
// bare placeholder object (backfilled by migration) has no results and no
// usable spread.
func hasSpread(sst *types.StressTest) bool {
	return sst != nil && len(sst.Results) > 0
}
