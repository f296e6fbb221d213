package template

import (
	"fmt"
	"sort"
	"strings"
)

// Threshold maps a minimum (inclusive) final score to an outcome label.
type Threshold struct {
	Min   float64 `json:"min"`
	Label string  `json:"label"`
}

// Rule is a named decision rubric: dimensions, weights, outcome thresholds.
// Thresholds are normalized to descending-minimum order at construction.
type Rule struct {
	TemplateID   string             `json:"template_id"`
	TemplateName string             `json:"template_name"`
	Dimensions   []string           `json:"dimensions"`
	Weights      map[string]float64 `json:"weights"`
	Thresholds   []Threshold        `json:"thresholds"`
}

// NewRule validates and normalizes a rubric. Thresholds are sorted
// descending by minimum and must include a 0-minimum catch-all.
func NewRule(id, name string, dimensions []string, weights map[string]float64, thresholds []Threshold) (Rule, error) {
	if strings.TrimSpace(id) == "" {
		return Rule{}, fmt.Errorf("template id is required")
	}
	if len(dimensions) == 0 {
		return Rule{}, fmt.Errorf("template %q has no dimensions", id)
	}

	seen := make(map[string]bool, len(dimensions))
	for _, dim := range dimensions {
		if strings.TrimSpace(dim) == "" {
			return Rule{}, fmt.Errorf("template %q has an empty dimension name", id)
		}
		if seen[dim] {
			return Rule{}, fmt.Errorf("template %q repeats dimension %q", id, dim)
		}
		seen[dim] = true
		w, ok := weights[dim]
		if !ok {
			return Rule{}, fmt.Errorf("template %q has no weight for dimension %q", id, dim)
		}
		if w <= 0 {
			return Rule{}, fmt.Errorf("template %q has non-positive weight for dimension %q", id, dim)
		}
	}

	if len(thresholds) == 0 {
		return Rule{}, fmt.Errorf("template %q has no thresholds", id)
	}
	sorted := make([]Threshold, len(thresholds))
	copy(sorted, thresholds)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Min > sorted[j].Min })
	if sorted[len(sorted)-1].Min != 0 {
		return Rule{}, fmt.Errorf("template %q is missing a 0-minimum catch-all threshold", id)
	}

	return Rule{
		TemplateID:   id,
		TemplateName: name,
		Dimensions:   dimensions,
		Weights:      weights,
		Thresholds:   sorted,
	}, nil
}

// WeightSum reports the sum of all dimension weights. Weights are not
// required to sum to 1; callers can surface a warning when they do not.
func (r Rule) WeightSum() float64 {
	total := 0.0
	for _, dim := range r.Dimensions {
		total += r.Weights[dim]
	}
	return total
}
