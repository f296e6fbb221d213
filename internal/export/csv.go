// Package export renders decision records into flat interchange formats:
// a one-row-per-record CSV projection and a paginated plain-text report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/decisio/decisio/pkg/types"
)

var csvHeader = []string{
	"decision_id",
	"parent_id",
	"version",
	"timestamp_utc",
	"template_name",
	"title",
	"final_score",
	"outcome",
	"confidence",
	"followup_outcome",
	"followup_updated_at",
}

// WriteCSV flattens records into one CSV row each.
func WriteCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		followUpOutcome := ""
		followUpAt := ""
		if r.FollowUp != nil {
			followUpOutcome = r.FollowUp.Outcome
			followUpAt = r.FollowUp.UpdatedAtUTC
		}
		row := []string{
			r.DecisionID,
			r.ParentID,
			strconv.Itoa(r.Version),
			r.TimestampUTC,
			r.TemplateName,
			r.Title,
			strconv.FormatFloat(r.FinalScore, 'f', -1, 64),
			r.Outcome,
			string(r.Confidence),
			followUpOutcome,
			followUpAt,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
