package analytics

import (
	"testing"

	"github.com/decisio/decisio/pkg/types"
)

func TestComputeTemplateImprovementsNeedsMinimumRecords(t *testing.T) {
	records := []types.Record{
		rec(withFollowUp("Failure")),
		rec(withFollowUp("Failure")),
	}
	if recs := ComputeTemplateImprovements(records); len(recs) != 0 {
		t.Fatalf("two records must not trigger recommendations: %+v", recs)
	}
}

func TestComputeTemplateImprovementsFalseGo(t *testing.T) {
	records := []types.Record{
		rec(withFollowUp("Failure")),
		rec(withFollowUp("Failure")),
		rec(withFollowUp("Success")),
	}

	recs := ComputeTemplateImprovements(records)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %+v", recs)
	}
	if recs[0].Template != "Go / No-Go Decision" || recs[0].Issue != "Too many false GO decisions" {
		t.Fatalf("unexpected recommendation: %+v", recs[0])
	}
}

func TestComputeTemplateImprovementsFalseNoGo(t *testing.T) {
	noGoSuccess := func(r *types.Record) {
		r.Outcome = "NO-GO"
		withFollowUp("Success")(r)
	}
	records := []types.Record{
		rec(noGoSuccess),
		rec(noGoSuccess),
		rec(nil),
	}

	recs := ComputeTemplateImprovements(records)
	if len(recs) != 1 || recs[0].Issue != "Too many false NO-GO decisions" {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
}

func TestComputeTemplateImprovementsHighSpread(t *testing.T) {
	records := []types.Record{
		rec(withStress(4.0)),
		rec(withStress(3.5)),
		rec(withStress(3.0)),
	}

	recs := ComputeTemplateImprovements(records)
	if len(recs) != 1 || recs[0].Issue != "High uncertainty (large scenario spread)" {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
	if recs[0].AvgSpread == nil || *recs[0].AvgSpread != 3.5 {
		t.Fatalf("avg spread = %v, want 3.5", recs[0].AvgSpread)
	}
}

func TestComputeTemplateImprovementsSpreadAtFloorIsFine(t *testing.T) {
	records := []types.Record{
		rec(withStress(3.0)),
		rec(withStress(3.0)),
		rec(withStress(3.0)),
	}
	if recs := ComputeTemplateImprovements(records); len(recs) != 0 {
		t.Fatalf("spread of exactly 3.0 must not trigger: %+v", recs)
	}
}

func TestComputeTemplateImprovementsBlankTemplateName(t *testing.T) {
	blankFail := func(r *types.Record) {
		r.TemplateName = "  "
		withFollowUp("Failure")(r)
	}
	records := []types.Record{rec(blankFail), rec(blankFail), rec(blankFail)}

	recs := ComputeTemplateImprovements(records)
	if len(recs) != 1 || recs[0].Template != "Unknown" {
		t.Fatalf("blank template not bucketed as Unknown: %+v", recs)
	}
}
