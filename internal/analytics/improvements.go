package analytics

import (
	"sort"
	"strings"

	"github.com/decisio/decisio/internal/outcome"
	"github.com/decisio/decisio/internal/scoring"
	"github.com/decisio/decisio/pkg/types"
)

// Template-level reporting floors. Fewer than minTemplateRecords decisions
// is not enough signal to recommend a rubric change; spreads above
// highSpread point at templates that tolerate too much uncertainty.
const (
	minTemplateRecords = 3
	falseCallFloor     = 2
	highSpread         = 3.0
)

type Recommendation struct {
	Template       string   `json:"template"`
	Issue          string   `json:"issue"`
	Recommendation string   `json:"recommendation"`
	AvgSpread      *float64 `json:"avg_spread"`
}

// ComputeTemplateImprovements buckets records by template name and emits a
// recommendation wherever a template repeatedly called decisions wrong
// (false GO / false NO-GO against follow-up results) or carries a large
// average scenario spread.
func ComputeTemplateImprovements(records []types.Record) []Recommendation {
	type bucket struct {
		count     int
		falseGo   int
		falseNoGo int
		spreadSum float64
		spreadN   int
	}

	byTemplate := map[string]*bucket{}
	for _, r := range records {
		name := strings.TrimSpace(r.TemplateName)
		if name == "" {
			name = "Unknown"
		}
		b := byTemplate[name]
		if b == nil {
			b = &bucket{}
			byTemplate[name] = b
		}
		b.count++

		if hasSpread(r.ScenarioStressTest) {
			b.spreadSum += r.ScenarioStressTest.Spread
			b.spreadN++
		}

		if r.FollowUp == nil {
			continue
		}
		pred := outcome.Normalize(r.Outcome)
		actual := outcome.NormalizeFollowUp(r.FollowUp.Outcome)
		if pred == outcome.Go && actual == outcome.Negative {
			b.falseGo++
		}
		if pred == outcome.NoGo && actual == outcome.Positive {
			b.falseNoGo++
		}
	}

	var recs []Recommendation
	for name, b := range byTemplate {
		if b.count < minTemplateRecords {
			continue
		}

		var avgSpread *float64
		if b.spreadN > 0 {
			avg := scoring.Round2(b.spreadSum / float64(b.spreadN))
			avgSpread = &avg
		}

		if b.falseGo >= falseCallFloor {
			recs = append(recs, Recommendation{
				Template:       name,
				Issue:          "Too many false GO decisions",
				Recommendation: "Increase Risk weight or raise GO threshold",
				AvgSpread:      avgSpread,
			})
		}
		if b.falseNoGo >= falseCallFloor {
			recs = append(recs, Recommendation{
				Template:       name,
				Issue:          "Too many false NO-GO decisions",
				Recommendation: "Lower NO-GO threshold or increase Value weight",
				AvgSpread:      avgSpread,
			})
		}
		if avgSpread != nil && *avgSpread > highSpread {
			recs = append(recs, Recommendation{
				Template:       name,
				Issue:          "High uncertainty (large scenario spread)",
				Recommendation: "Add assumptions, require validation, or increase confidence penalty",
				AvgSpread:      avgSpread,
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Template != recs[j].Template {
			return recs[i].Template < recs[j].Template
		}
		return recs[i].Issue < recs[j].Issue
	})
	return recs
}
