// Package decision composes the engine components into one evaluation:
// an immutable Request in, a fully populated Record out. The pipeline holds
// no state between calls.
package decision

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/decisio/decisio/internal/contract"
	"github.com/decisio/decisio/internal/explain"
	"github.com/decisio/decisio/internal/playbook"
	"github.com/decisio/decisio/internal/readiness"
	"github.com/decisio/decisio/internal/scenario"
	"github.com/decisio/decisio/internal/scoring"
	"github.com/decisio/decisio/internal/template"
	"github.com/decisio/decisio/pkg/types"
)

// ErrUnknownDimension reports a score keyed by a dimension the template
// does not define. Unknown keys are rejected rather than silently ignored.
var ErrUnknownDimension = errors.New("score for unknown dimension")

// Request carries every raw input of one evaluation.
type Request struct {
	Title   string
	Context string

	DecisionType  string
	DecisionClass string

	Owner                   string
	ResponsibilityConfirmed bool
	Stakeholders            []string
	ReviewDate              string

	Assumptions      []string
	Unknowns         []string
	AssumptionsNotes string
	UnknownsNotes    string

	Scores map[string]float64
	Deltas scenario.Deltas
}

// Evaluate scores the request against rule and assembles the complete
// decision record, including the readiness snapshot captured now.
func Evaluate(rule template.Rule, req Request) (types.Record, error) {
	if err := validateScores(rule, req.Scores); err != nil {
		return types.Record{}, err
	}

	finalScore := scoring.WeightedScore(rule, req.Scores)
	outcomeLabel := scoring.Outcome(rule, finalScore)
	confidence := scoring.ConfidenceBand(finalScore)

	explanation := explain.Explain(rule, req.Scores)
	book := playbook.Build(rule, req.Scores, outcomeLabel, explanation)
	stress := scenario.Run(rule, finalScore, req.Deltas)

	ready := readiness.Evaluate(readiness.Input{
		Owner:                   req.Owner,
		DecisionType:            req.DecisionType,
		DecisionClass:           req.DecisionClass,
		Stakeholders:            req.Stakeholders,
		Assumptions:             req.Assumptions,
		Risks:                   req.Unknowns,
		Confidence:              confidence,
		Weights:                 rule.Weights,
		ResponsibilityConfirmed: req.ResponsibilityConfirmed,
	})

	validity := contract.BuildValidity(req.Assumptions, req.Unknowns, req.ReviewDate, req.DecisionClass)
	execRec := contract.BuildExecutiveRec(outcomeLabel, finalScore, confidence, ready, explanation, book, stress)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled Decision"
	}
	context := strings.TrimSpace(req.Context)
	if context == "" {
		context = "N/A"
	}

	return types.Record{
		DecisionID:    NewID(),
		TimestampUTC:  NowUTC(),
		SchemaVersion: types.SchemaVersion,

		TemplateID:   rule.TemplateID,
		TemplateName: rule.TemplateName,

		Title:   title,
		Context: context,

		DecisionType:  req.DecisionType,
		DecisionClass: req.DecisionClass,

		EngineVersion:  scoring.EngineVersion,
		RulesetVersion: scoring.RulesetVersion,

		DecisionOwner:           strings.TrimSpace(req.Owner),
		ResponsibilityConfirmed: req.ResponsibilityConfirmed,
		Stakeholders:            nonBlank(req.Stakeholders),
		ReviewDate:              req.ReviewDate,
		Assumptions:             nonBlank(req.Assumptions),
		Unknowns:                nonBlank(req.Unknowns),
		AssumptionsNotes:        strings.TrimSpace(req.AssumptionsNotes),
		UnknownsNotes:           strings.TrimSpace(req.UnknownsNotes),

		Scores:     req.Scores,
		FinalScore: finalScore,
		Outcome:    outcomeLabel,
		Confidence: confidence,

		Explanation:        explanation,
		Playbook:           book,
		ScenarioStressTest: stress,
		ValidityContract:   validity,
		ExecutiveRec:       execRec,

		ReadinessScore:       ready.Score,
		ReadinessStatus:      ready.Status,
		ReadinessMinRequired: ready.MinRequired,
		ReadinessBlockers:    ready.Blockers,
		ReadinessIssues:      ready.Issues,

		Version: 1,
	}, nil
}

// Revise copies a record into a new lineage entry: fresh id and timestamp,
// parent set to the lineage root, version incremented. The copy carries no
// follow-up; it is a new prediction.
func Revise(prev types.Record) types.Record {
	next := prev
	next.DecisionID = NewID()
	next.TimestampUTC = NowUTC()
	next.ParentID = prev.ParentID
	if next.ParentID == "" {
		next.ParentID = prev.DecisionID
	}
	next.Version = prev.Version + 1
	next.FollowUp = nil
	return next
}

// NewID generates a record id: "dec_" plus twelve hex characters.
func NewID() string {
	id := uuid.New()
	return "dec_" + hex.EncodeToString(id[:])[:12]
}

// NowUTC is the record timestamp format: UTC at second precision.
func NowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

func validateScores(rule template.Rule, scores map[string]float64) error {
	known := make(map[string]bool, len(rule.Dimensions))
	for _, dim := range rule.Dimensions {
		known[dim] = true
	}
	for dim := range scores {
		if !known[dim] {
			return fmt.Errorf("%w: %q not in template %q", ErrUnknownDimension, dim, rule.TemplateID)
		}
	}
	return nil
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}
