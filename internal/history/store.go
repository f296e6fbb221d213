// Package history owns the append-only audit log of decision records.
package history

import "github.com/decisio/decisio/pkg/types"

// DefaultReadLimit bounds how many trailing records a plain read returns.
const DefaultReadLimit = 200

// ReadAll disables the read limit. Full-history consumers (analytics,
// export, revise, report) must use it: a bounded read silently drops the
// oldest records once the log grows past the limit.
const ReadAll = -1

// MigrationReport summarizes one schema migration pass. Updated counts
// records where any field was backfilled or the schema version changed.
type MigrationReport struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Written int `json:"written"`
}

// Store is the persistence contract for decision history. Append never
// modifies existing records; the remaining mutations rewrite in place.
// Implementations assume a single active writer.
type Store interface {
	// Append adds one record to the end of the log.
	Append(rec types.Record) error

	// Read returns up to limit trailing records in log order. Malformed
	// entries are skipped, not surfaced. A limit of 0 means
	// DefaultReadLimit; a negative limit (ReadAll) returns everything.
	Read(limit int) ([]types.Record, error)

	// UpdateFollowUp attaches or overwrites the follow-up of the first
	// record matching id. Reports whether a match was found.
	UpdateFollowUp(id, outcome, notes string) (bool, error)

	// DeleteByTitle removes records whose title contains text,
	// case-insensitive. Returns the number removed.
	DeleteByTitle(text string) (int, error)

	// DeleteLegacy removes records that carry no decision id.
	// Returns the number removed.
	DeleteLegacy() (int, error)

	// Migrate backfills documented defaults and force-sets the schema
	// version on every record. Unknown fields must survive.
	Migrate(targetVersion int) (MigrationReport, error)

	Close() error
}
