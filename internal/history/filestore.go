package history

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/decisio/decisio/pkg/types"
)

// FileStore keeps the history as newline-delimited JSON, one UTF-8 object
// per line. Append is a true append; every other mutation is a whole-file
// read-then-rewrite, so concurrent writers must be serialized externally.
// Mutations edit raw lines so fields this build does not know about
// survive a rewrite.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(rec types.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G304 -- operator-configured history path.
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	return nil
}

func (s *FileStore) Read(limit int) ([]types.Record, error) {
	if limit == 0 {
		limit = DefaultReadLimit
	}
	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(lines))
	for _, line := range lines {
		var rec types.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			// Malformed line: skip, keep reading.
			continue
		}
		records = append(records, rec)
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}

func (s *FileStore) UpdateFollowUp(id, outcome, notes string) (bool, error) {
	lines, err := s.readLines()
	if err != nil {
		return false, err
	}

	found := false
	for i, line := range lines {
		if gjson.GetBytes(line, "decision_id").String() != id {
			continue
		}
		updated, err := SetFollowUp(line, types.FollowUp{Outcome: outcome, Notes: notes, UpdatedAtUTC: NowUTC()})
		if err != nil {
			return false, err
		}
		lines[i] = updated
		found = true
		break
	}
	if !found {
		return false, nil
	}
	return true, s.writeLines(lines)
}

func (s *FileStore) DeleteByTitle(text string) (int, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return 0, nil
	}
	lines, err := s.readLines()
	if err != nil {
		return 0, err
	}

	kept := lines[:0]
	deleted := 0
	for _, line := range lines {
		title := strings.ToLower(gjson.GetBytes(line, "title").String())
		if strings.Contains(title, needle) {
			deleted++
			continue
		}
		kept = append(kept, line)
	}
	if deleted == 0 {
		return 0, nil
	}
	return deleted, s.writeLines(kept)
}

func (s *FileStore) DeleteLegacy() (int, error) {
	lines, err := s.readLines()
	if err != nil {
		return 0, err
	}

	kept := lines[:0]
	deleted := 0
	for _, line := range lines {
		if gjson.GetBytes(line, "decision_id").String() == "" {
			deleted++
			continue
		}
		kept = append(kept, line)
	}
	if deleted == 0 {
		return 0, nil
	}
	return deleted, s.writeLines(kept)
}

func (s *FileStore) Migrate(targetVersion int) (MigrationReport, error) {
	lines, err := s.readLines()
	if err != nil {
		return MigrationReport{}, err
	}
	if len(lines) == 0 {
		return MigrationReport{}, nil
	}

	report := MigrationReport{Total: len(lines)}
	out := make([][]byte, 0, len(lines))
	for _, line := range lines {
		migrated, changed, err := MigrateRecord(line, targetVersion)
		if err != nil {
			return MigrationReport{}, fmt.Errorf("migrating record: %w", err)
		}
		if changed {
			report.Updated++
		}
		out = append(out, migrated)
	}
	report.Written = len(out)

	if err := s.writeLines(out); err != nil {
		return MigrationReport{}, err
	}
	return report, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) readLines() ([][]byte, error) {
	f, err := os.Open(s.path) // #nosec G304 -- operator-configured history path.
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var lines [][]byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		lines = append(lines, append([]byte(nil), line...))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return lines, nil
}

func (s *FileStore) writeLines(lines [][]byte) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("rewriting history: %w", err)
	}
	return nil
}

// SetFollowUp attaches or overwrites the follow_up object on a raw record,
// leaving every other field untouched.
func SetFollowUp(line []byte, fu types.FollowUp) ([]byte, error) {
	updated, err := sjson.SetBytes(line, "follow_up", fu)
	if err != nil {
		return nil, fmt.Errorf("setting follow_up: %w", err)
	}
	return updated, nil
}
