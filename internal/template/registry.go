package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// customTemplate is the persisted shape of a user-defined rubric: a single
// JSON object maps template key -> this. Thresholds carry only the "go" and
// "review" cut lines; the catch-all is implicit.
type customTemplate struct {
	TemplateID   string             `json:"template_id"`
	TemplateName string             `json:"template_name"`
	Dimensions   []string           `json:"dimensions"`
	Weights      map[string]float64 `json:"weights"`
	Thresholds   map[string]float64 `json:"thresholds"`
}

// Custom threshold labels. User-defined rubrics always classify into the
// standard go / review / no-go triple.
const (
	customGoLabel     = "PROCEED"
	customReviewLabel = "REVIEW / REVISE"
	customStopLabel   = "DO NOT PROCEED"
)

// Registry holds the merged view of built-in and user-defined rubrics.
// Custom definitions override built-ins sharing the same key.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry merges customs over the built-ins.
func NewRegistry(custom map[string]Rule) *Registry {
	rules := Builtins()
	for key, rule := range custom {
		rules[key] = rule
	}
	return &Registry{rules: rules}
}

// Get returns the rubric registered under key.
func (reg *Registry) Get(key string) (Rule, bool) {
	rule, ok := reg.rules[key]
	return rule, ok
}

// Keys returns all registered template keys, sorted.
func (reg *Registry) Keys() []string {
	keys := make([]string, 0, len(reg.rules))
	for k := range reg.rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadCustom reads user-defined rubrics from path. A missing file is an
// empty set, not an error. Malformed entries are rejected with the
// validation error rather than silently dropped.
func LoadCustom(path string) (map[string]Rule, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-configured templates path.
	if os.IsNotExist(err) {
		return map[string]Rule{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading custom templates: %w", err)
	}

	var stored map[string]customTemplate
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("parsing custom templates: %w", err)
	}

	out := make(map[string]Rule, len(stored))
	for key, ct := range stored {
		rule, err := NewRule(ct.TemplateID, ct.TemplateName, ct.Dimensions, ct.Weights, customThresholds(ct.Thresholds))
		if err != nil {
			return nil, fmt.Errorf("custom template %q: %w", key, err)
		}
		out[key] = rule
	}
	return out, nil
}

// SaveCustom writes user-defined rubrics to path as one JSON object.
func SaveCustom(path string, custom map[string]Rule) error {
	stored := make(map[string]customTemplate, len(custom))
	for key, rule := range custom {
		cuts := map[string]float64{"go": 7.5, "review": 6.0}
		if len(rule.Thresholds) >= 2 {
			cuts["go"] = rule.Thresholds[0].Min
			cuts["review"] = rule.Thresholds[1].Min
		}
		stored[key] = customTemplate{
			TemplateID:   rule.TemplateID,
			TemplateName: rule.TemplateName,
			Dimensions:   rule.Dimensions,
			Weights:      rule.Weights,
			Thresholds:   cuts,
		}
	}

	payload, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding custom templates: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating templates directory: %w", err)
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("writing custom templates: %w", err)
	}
	return nil
}

func customThresholds(cuts map[string]float64) []Threshold {
	goCut, ok := cuts["go"]
	if !ok {
		goCut = 7.5
	}
	reviewCut, ok := cuts["review"]
	if !ok {
		reviewCut = 6.0
	}
	return []Threshold{
		{Min: goCut, Label: customGoLabel},
		{Min: reviewCut, Label: customReviewLabel},
		{Min: 0.0, Label: customStopLabel},
	}
}
