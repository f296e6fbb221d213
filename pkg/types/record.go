package types

// SchemaVersion is the current on-disk record schema.
const SchemaVersion = 2

type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

type ReadinessStatus string

const (
	ReadinessBlock   ReadinessStatus = "BLOCK"
	ReadinessReview  ReadinessStatus = "REVIEW"
	ReadinessApprove ReadinessStatus = "APPROVE"
)

// DecisionClass captures reversibility: one-way decisions get higher scrutiny.
const (
	ClassOneWay       = "One-way"
	ClassTwoWay       = "Two-way"
	ClassExperimental = "Experimental"
)

const (
	TypeStrategic   = "Strategic"
	TypeFinancial   = "Financial"
	TypeHiring      = "Hiring"
	TypeOperational = "Operational"
	TypePersonal    = "Personal"
)

// Follow-up outcome labels recorded after the fact.
const (
	FollowUpSuccess = "Success"
	FollowUpPartial = "Partial Success"
	FollowUpFailure = "Failure"
)

// Record is the unit of history: one evaluated decision, append-only once
// written. Only FollowUp may be attached later.
type Record struct {
	DecisionID    string `json:"decision_id"`
	TimestampUTC  string `json:"timestamp_utc"`
	SchemaVersion int    `json:"schema_version"`

	TemplateID   string `json:"template_id"`
	TemplateName string `json:"template_name"`

	Title   string `json:"title"`
	Context string `json:"context"`

	DecisionType  string `json:"decision_type"`
	DecisionClass string `json:"decision_class"`

	EngineVersion  string `json:"engine_version"`
	RulesetVersion string `json:"ruleset_version"`

	DecisionOwner           string   `json:"decision_owner"`
	ResponsibilityConfirmed bool     `json:"responsibility_confirmed"`
	Stakeholders            []string `json:"stakeholders"`
	ReviewDate              string   `json:"review_date"`
	Assumptions             []string `json:"assumptions"`
	Unknowns                []string `json:"unknowns"`
	AssumptionsNotes        string   `json:"assumptions_notes"`
	UnknownsNotes           string   `json:"unknowns_notes"`

	Scores     map[string]float64 `json:"scores"`
	FinalScore float64            `json:"final_score"`
	Outcome    string             `json:"outcome"`
	Confidence Confidence         `json:"confidence"`

	Explanation        *Explanation      `json:"explanation,omitempty"`
	Playbook           *Playbook         `json:"playbook,omitempty"`
	ScenarioStressTest *StressTest       `json:"scenario_stress_test,omitempty"`
	ValidityContract   *ValidityContract `json:"validity_contract,omitempty"`
	ExecutiveRec       *ExecutiveRec     `json:"executive_recommendation,omitempty"`

	// Readiness snapshot captured at evaluation time, never recomputed.
	ReadinessScore       int             `json:"readiness_score"`
	ReadinessStatus      ReadinessStatus `json:"readiness_status"`
	ReadinessMinRequired int             `json:"readiness_min_required"`
	ReadinessBlockers    []string        `json:"readiness_blockers"`
	ReadinessIssues      []string        `json:"readiness_issues"`

	ParentID string `json:"parent_id,omitempty"`
	Version  int    `json:"version"`

	FollowUp *FollowUp `json:"follow_up,omitempty"`
}

type FollowUp struct {
	Outcome      string `json:"outcome"`
	Notes        string `json:"notes"`
	UpdatedAtUTC string `json:"updated_at_utc"`
}

type DimensionScore struct {
	Dimension string  `json:"dimension"`
	Score     float64 `json:"score"`
}

type Contribution struct {
	Dimension string  `json:"dimension"`
	Weighted  float64 `json:"weighted"`
}

type Explanation struct {
	LowestDimensions        []DimensionScore `json:"lowest_dimensions"`
	HighestDimensions       []DimensionScore `json:"highest_dimensions"`
	TopPositiveContributors []Contribution   `json:"top_positive_contributors"`
	TopNegativeContributors []Contribution   `json:"top_negative_contributors"`
}

type PlaybookAction struct {
	Dimension          string   `json:"dimension"`
	Score              float64  `json:"score"`
	RecommendedActions []string `json:"recommended_actions"`
}

type Playbook struct {
	Summary         string           `json:"summary"`
	FocusDimensions []string         `json:"focus_dimensions"`
	Actions         []PlaybookAction `json:"actions"`
	Flags           []string         `json:"flags"`
	Checklist       []string         `json:"checklist"`
}

type ScenarioResult struct {
	Score      float64    `json:"score"`
	Outcome    string     `json:"outcome"`
	Confidence Confidence `json:"confidence"`
}

type StressTest struct {
	ExpectedDelta float64                   `json:"expected_delta"`
	BestDelta     float64                   `json:"best_delta"`
	WorstDelta    float64                   `json:"worst_delta"`
	Results       map[string]ScenarioResult `json:"results"`
	Spread        float64                   `json:"spread"`
}

type ValidityContract struct {
	ValidIf       []string `json:"valid_if"`
	InvalidatesIf []string `json:"invalidates_if"`
	ReviewOn      string   `json:"review_on"`
	Cadence       string   `json:"cadence"`
}

type ExecutiveRec struct {
	Headline          string   `json:"headline"`
	Tone              string   `json:"tone"`
	Summary           string   `json:"summary"`
	ScoreLine         string   `json:"score_line"`
	RationalePositive []string `json:"rationale_positive"`
	RationaleNegative []string `json:"rationale_negative"`
	NextSteps7d       []string `json:"next_steps_7d"`
	RiskFlags         []string `json:"risk_flags"`
	StressNote        string   `json:"stress_note"`
}
