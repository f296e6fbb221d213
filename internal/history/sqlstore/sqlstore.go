// Package sqlstore is the indexed history backend: the same append-only
// semantics as the JSONL file store, backed by SQLite so point updates and
// deletes avoid whole-file rewrites.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/decisio/decisio/internal/history"
	"github.com/decisio/decisio/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
    seq         INTEGER PRIMARY KEY AUTOINCREMENT,
    decision_id TEXT NOT NULL DEFAULT '',
    title       TEXT NOT NULL DEFAULT '',
    body        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decisions_decision_id ON decisions(decision_id);
`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite-backed history at dsn and applies the
// schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Append(rec types.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO decisions (decision_id, title, body) VALUES (?, ?, ?)`,
		rec.DecisionID, rec.Title, string(body))
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

func (s *Store) Read(limit int) ([]types.Record, error) {
	if limit == 0 {
		limit = history.DefaultReadLimit
	}
	rows, err := s.db.Query(`SELECT body FROM decisions ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var rec types.Record
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}

func (s *Store) UpdateFollowUp(id, outcome, notes string) (bool, error) {
	var seq int64
	var body string
	row := s.db.QueryRow(`SELECT seq, body FROM decisions WHERE decision_id = ? ORDER BY seq ASC LIMIT 1`, id)
	if err := row.Scan(&seq, &body); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	fu := types.FollowUp{Outcome: outcome, Notes: notes, UpdatedAtUTC: history.NowUTC()}
	updated, err := history.SetFollowUp([]byte(body), fu)
	if err != nil {
		return false, err
	}
	if _, err := s.db.Exec(`UPDATE decisions SET body = ? WHERE seq = ?`, string(updated), seq); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByTitle matches in Go rather than with SQL lower(), which folds
// ASCII only; both backends must agree on non-ASCII titles.
func (s *Store) DeleteByTitle(text string) (int, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return 0, nil
	}

	rows, err := s.db.Query(`SELECT seq, title FROM decisions`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var doomed []int64
	for rows.Next() {
		var seq int64
		var title string
		if err := rows.Scan(&seq, &title); err != nil {
			return 0, err
		}
		if strings.Contains(strings.ToLower(title), needle) {
			doomed = append(doomed, seq)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, seq := range doomed {
		if _, err := s.db.Exec(`DELETE FROM decisions WHERE seq = ?`, seq); err != nil {
			return 0, err
		}
	}
	return len(doomed), nil
}

func (s *Store) DeleteLegacy() (int, error) {
	res, err := s.db.Exec(`DELETE FROM decisions WHERE decision_id = ''`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *Store) Migrate(targetVersion int) (history.MigrationReport, error) {
	rows, err := s.db.Query(`SELECT seq, body FROM decisions ORDER BY seq ASC`)
	if err != nil {
		return history.MigrationReport{}, err
	}
	defer rows.Close()

	type pending struct {
		seq  int64
		body string
	}
	var report history.MigrationReport
	var updates []pending
	for rows.Next() {
		var seq int64
		var body string
		if err := rows.Scan(&seq, &body); err != nil {
			return history.MigrationReport{}, err
		}
		report.Total++
		migrated, changed, err := history.MigrateRecord([]byte(body), targetVersion)
		if err != nil {
			return history.MigrationReport{}, fmt.Errorf("migrating record: %w", err)
		}
		if changed {
			report.Updated++
			updates = append(updates, pending{seq: seq, body: string(migrated)})
		}
		report.Written++
	}
	if err := rows.Err(); err != nil {
		return history.MigrationReport{}, err
	}

	for _, u := range updates {
		if _, err := s.db.Exec(`UPDATE decisions SET body = ? WHERE seq = ?`, u.body, u.seq); err != nil {
			return history.MigrationReport{}, err
		}
	}
	return report, nil
}
