package history

import (
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Documented defaults backfilled by schema migration. Raw-value JSON so
// empty arrays and objects survive encoding exactly.
var migrationDefaults = []struct {
	path string
	raw  string
}{
	{"assumptions", "[]"},
	{"unknowns", "[]"},
	{"assumptions_notes", `""`},
	{"unknowns_notes", `""`},
	{"scenario_stress_test", "{}"},
	{"decision_type", `"Unknown"`},
	{"decision_owner", `""`},
	{"stakeholders", "[]"},
	{"review_date", `""`},
}

var followUpDefaults = []struct {
	path string
	raw  string
}{
	{"follow_up.outcome", `""`},
	{"follow_up.notes", `""`},
	{"follow_up.updated_at_utc", `""`},
}

// MigrateRecord backfills missing expected fields and force-sets the schema
// version on one raw record. It edits the raw JSON so keys this build does
// not know about survive. Reports whether anything changed; filling a
// default counts as a change, not only a version bump.
func MigrateRecord(line []byte, targetVersion int) ([]byte, bool, error) {
	// Only JSON objects are records. Anything else passes through
	// untouched rather than being rewritten into pseudo-JSON.
	if !gjson.ValidBytes(line) || !gjson.ParseBytes(line).IsObject() {
		return line, false, nil
	}

	changed := false
	out := line

	if v := gjson.GetBytes(out, "schema_version"); !v.Exists() || v.Int() != int64(targetVersion) {
		next, err := sjson.SetBytes(out, "schema_version", targetVersion)
		if err != nil {
			return nil, false, err
		}
		out = next
		changed = true
	}

	for _, def := range migrationDefaults {
		if gjson.GetBytes(out, def.path).Exists() {
			continue
		}
		next, err := sjson.SetRawBytes(out, def.path, []byte(def.raw))
		if err != nil {
			return nil, false, err
		}
		out = next
		changed = true
	}

	// Follow-up sub-fields are stabilized only when a follow-up exists.
	if gjson.GetBytes(out, "follow_up").IsObject() {
		for _, def := range followUpDefaults {
			if gjson.GetBytes(out, def.path).Exists() {
				continue
			}
			next, err := sjson.SetRawBytes(out, def.path, []byte(def.raw))
			if err != nil {
				return nil, false, err
			}
			out = next
			changed = true
		}
	}

	return out, changed, nil
}

// NowUTC is the follow-up timestamp format: UTC at second precision.
func NowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}
