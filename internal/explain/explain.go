// Package explain derives which dimensions drove a decision score: the
// weakest and strongest raw scores, and the smallest and largest weighted
// contributions.
package explain

import (
	"sort"

	"github.com/decisio/decisio/internal/scoring"
	"github.com/decisio/decisio/internal/template"
	"github.com/decisio/decisio/pkg/types"
)

type item struct {
	dimension    string
	score        float64
	contribution float64
}

// Explain is a pure function of (rule, scores). Each output list is capped
// at two entries; ties keep the template's dimension order.
func Explain(rule template.Rule, scores map[string]float64) *types.Explanation {
	items := make([]item, 0, len(rule.Dimensions))
	for _, dim := range rule.Dimensions {
		s := scoring.Clamp(scores[dim])
		items = append(items, item{dimension: dim, score: s, contribution: s * rule.Weights[dim]})
	}

	byScore := make([]item, len(items))
	copy(byScore, items)
	sort.SliceStable(byScore, func(i, j int) bool { return byScore[i].score < byScore[j].score })

	byContrib := make([]item, len(items))
	copy(byContrib, items)
	sort.SliceStable(byContrib, func(i, j int) bool { return byContrib[i].contribution < byContrib[j].contribution })

	return &types.Explanation{
		LowestDimensions:        dimensionScores(byScore, 2),
		HighestDimensions:       dimensionScores(reversed(byScore), 2),
		TopNegativeContributors: contributions(byContrib, 2),
		TopPositiveContributors: contributions(reversed(byContrib), 2),
	}
}

func dimensionScores(items []item, limit int) []types.DimensionScore {
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]types.DimensionScore, 0, len(items))
	for _, it := range items {
		out = append(out, types.DimensionScore{Dimension: it.dimension, Score: it.score})
	}
	return out
}

func contributions(items []item, limit int) []types.Contribution {
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]types.Contribution, 0, len(items))
	for _, it := range items {
		out = append(out, types.Contribution{Dimension: it.dimension, Weighted: scoring.Round2(it.contribution)})
	}
	return out
}

func reversed(items []item) []item {
	out := make([]item, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return out
}
