package sqlstore

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/decisio/decisio/internal/history"
	"github.com/decisio/decisio/pkg/types"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(id, title string) types.Record {
	return types.Record{
		DecisionID:    id,
		TimestampUTC:  "2026-08-01T10:00:00Z",
		SchemaVersion: types.SchemaVersion,
		TemplateID:    "go_no_go",
		TemplateName:  "Go / No-Go Decision",
		Title:         title,
		Context:       "ctx",
		DecisionType:  types.TypeOperational,
		DecisionClass: types.ClassTwoWay,
		Scores:        map[string]float64{"Value": 7},
		FinalScore:    7.0,
		Outcome:       "REVIEW / REVISE",
		Confidence:    types.ConfidenceMedium,
		Version:       1,
	}
}

func TestAppendReadRoundTrip(t *testing.T) {
	store := openTemp(t)
	want := []types.Record{
		record("dec_000000000001", "first"),
		record("dec_000000000002", "second"),
	}
	for _, rec := range want {
		if err := store.Append(rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestReadAllBypassesDefaultLimit(t *testing.T) {
	store := openTemp(t)
	total := history.DefaultReadLimit + 1
	for i := 0; i < total; i++ {
		if err := store.Append(record(fmt.Sprintf("dec_%012d", i), "bulk")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	capped, err := store.Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(capped) != history.DefaultReadLimit {
		t.Fatalf("default read returned %d, want %d", len(capped), history.DefaultReadLimit)
	}

	all, err := store.Read(history.ReadAll)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(all) != total {
		t.Fatalf("unbounded read returned %d, want %d", len(all), total)
	}
	if all[0].DecisionID != "dec_000000000000" {
		t.Fatalf("oldest record dropped: first id = %s", all[0].DecisionID)
	}
}

func TestUpdateFollowUp(t *testing.T) {
	store := openTemp(t)
	if err := store.Append(record("dec_000000000001", "target")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	found, err := store.UpdateFollowUp("dec_000000000001", types.FollowUpSuccess, "done")
	if err != nil || !found {
		t.Fatalf("UpdateFollowUp: found=%v err=%v", found, err)
	}
	missed, err := store.UpdateFollowUp("dec_ffffffffffff", types.FollowUpFailure, "")
	if err != nil {
		t.Fatalf("UpdateFollowUp: %v", err)
	}
	if missed {
		t.Fatalf("expected no match for unknown id")
	}

	got, err := store.Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	fu := got[0].FollowUp
	if fu == nil || fu.Outcome != types.FollowUpSuccess || fu.Notes != "done" {
		t.Fatalf("follow-up not attached: %+v", fu)
	}
}

func TestDeleteByTitle(t *testing.T) {
	store := openTemp(t)
	for i, title := range []string{"Migrate billing", "Hire SRE", "billing cleanup"} {
		rec := record("dec_"+string(rune('a'+i)), title)
		if err := store.Append(rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	deleted, err := store.DeleteByTitle("BILLING")
	if err != nil {
		t.Fatalf("DeleteByTitle: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}
	got, err := store.Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Hire SRE" {
		t.Fatalf("unexpected survivors: %+v", got)
	}
}

func TestDeleteByTitleFoldsNonASCII(t *testing.T) {
	store := openTemp(t)
	if err := store.Append(record("dec_a", "ÜBER migration")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(record("dec_b", "keep")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	deleted, err := store.DeleteByTitle("über")
	if err != nil {
		t.Fatalf("DeleteByTitle: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", deleted)
	}
	got, err := store.Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].Title != "keep" {
		t.Fatalf("unexpected survivors: %+v", got)
	}
}

func TestDeleteLegacy(t *testing.T) {
	store := openTemp(t)
	legacy := record("", "pre-id era")
	if err := store.Append(legacy); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(record("dec_000000000001", "keep")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	deleted, err := store.DeleteLegacy()
	if err != nil {
		t.Fatalf("DeleteLegacy: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", deleted)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := openTemp(t)
	old := record("dec_000000000001", "old")
	old.SchemaVersion = 1
	if err := store.Append(old); err != nil {
		t.Fatalf("Append: %v", err)
	}

	first, err := store.Migrate(types.SchemaVersion)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if first.Total != 1 || first.Updated != 1 {
		t.Fatalf("first pass: %+v", first)
	}

	second, err := store.Migrate(types.SchemaVersion)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if second.Total != 1 || second.Updated != 0 {
		t.Fatalf("second pass: %+v", second)
	}
}
