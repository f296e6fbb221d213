// Package outcome is the single home for outcome-label synonym
// normalization. Predicted labels vary by template ("PROCEED", "GO",
// "SAFE TO IMPLEMENT"); analytics and recommendation text all reason over
// the canonical kind instead of matching strings ad hoc.
package outcome

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/decisio/decisio/pkg/types"
)

type Kind string

const (
	Go     Kind = "GO"
	NoGo   Kind = "NO-GO"
	Review Kind = "REVIEW/REVISE"
)

// Polarity of an actual follow-up result.
type Polarity string

const (
	Positive Polarity = "Positive"
	Negative Polarity = "Negative"
	Mixed    Polarity = "Mixed"
)

var titleCaser = cases.Title(language.English)

// Normalize maps a predicted outcome label to its canonical kind.
// Unrecognized labels are treated as Review: they demand human judgment.
func Normalize(label string) Kind {
	up := strings.ToUpper(strings.TrimSpace(label))
	switch up {
	case "GO", "PROCEED", "YES", "APPROVE", "SAFE TO IMPLEMENT", "LOW RISK":
		return Go
	case "NO-GO", "NO GO", "NOGO", "NO_GO", "REJECT", "STOP", "DO NOT PROCEED", "HIGH RISK", "HIGH IMPACT RISK":
		return NoGo
	case "REVIEW", "REVISE", "REVIEW/REVISE", "REVIEW / REVISE", "HOLD", "MODERATE RISK", "IMPLEMENT WITH CAUTION":
		return Review
	}
	return Review
}

// NormalizeFollowUp maps an actual follow-up outcome to a polarity.
// Labels are title-cased first so "success", "SUCCESS", and "Success" agree.
func NormalizeFollowUp(label string) Polarity {
	switch titleCaser.String(strings.TrimSpace(label)) {
	case types.FollowUpSuccess:
		return Positive
	case types.FollowUpFailure:
		return Negative
	}
	return Mixed
}

// SuccessValue maps an actual follow-up outcome to a numeric success rate
// contribution. The second return is false when the label carries no
// usable signal.
func SuccessValue(label string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "success":
		return 1.0, true
	case "partial success":
		return 0.5, true
	case "failure":
		return 0.0, true
	}
	return 0, false
}
