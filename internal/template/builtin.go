package template

// Builtins returns the built-in rubrics. The returned map is freshly built
// per call so callers can merge customs over it without aliasing.
func Builtins() map[string]Rule {
	return map[string]Rule{
		"go_no_go": {
			TemplateID:   "go_no_go",
			TemplateName: "Go / No-Go Decision",
			Dimensions:   []string{"Value", "Feasibility", "Risk", "Alignment", "Urgency"},
			Weights: map[string]float64{
				"Value":       0.25,
				"Feasibility": 0.25,
				"Risk":        0.20,
				"Alignment":   0.20,
				"Urgency":     0.10,
			},
			Thresholds: []Threshold{
				{Min: 7.5, Label: "PROCEED"},
				{Min: 6.0, Label: "REVIEW / REVISE"},
				{Min: 0.0, Label: "DO NOT PROCEED"},
			},
		},
		"risk_exposure": {
			TemplateID:   "risk_exposure",
			TemplateName: "Risk Exposure Assessment",
			Dimensions:   []string{"Financial Risk", "Operational Risk", "Legal/Compliance Risk", "Reputational Risk", "Control Readiness"},
			Weights: map[string]float64{
				"Financial Risk":        0.30,
				"Operational Risk":      0.25,
				"Legal/Compliance Risk": 0.20,
				"Reputational Risk":     0.15,
				"Control Readiness":     0.10,
			},
			Thresholds: []Threshold{
				{Min: 7.5, Label: "LOW RISK"},
				{Min: 6.0, Label: "MODERATE RISK"},
				{Min: 0.0, Label: "HIGH RISK"},
			},
		},
		"change_impact": {
			TemplateID:   "change_impact",
			TemplateName: "Change Impact Decision",
			Dimensions:   []string{"Impact Value", "Change Complexity", "Team Readiness", "Risk of Resistance", "Reversibility"},
			Weights: map[string]float64{
				"Impact Value":       0.30,
				"Change Complexity":  0.25,
				"Team Readiness":     0.20,
				"Risk of Resistance": 0.15,
				"Reversibility":      0.10,
			},
			Thresholds: []Threshold{
				{Min: 7.5, Label: "SAFE TO IMPLEMENT"},
				{Min: 6.0, Label: "IMPLEMENT WITH CAUTION"},
				{Min: 0.0, Label: "HIGH IMPACT RISK"},
			},
		},
	}
}
