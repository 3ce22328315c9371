// Package activity keeps an append-only CSV log of budget changes under
// <data-dir>/logs/activity.csv.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// Header is the first row of activity.csv.
const Header = "timestamp,action,budget_id,details"

// Entry is one recorded change. BudgetID is empty for changes that span the
// whole collection, such as a reset.
type Entry struct {
	Timestamp time.Time
	Action    string
	BudgetID  string
	Details   string
}

// Path returns the activity log location under a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, "logs", "activity.csv")
}

func (e Entry) row() []string {
	return []string{e.Timestamp.UTC().Format(time.RFC3339), e.Action, e.BudgetID, e.Details}
}

// entryFromRow decodes one CSV row. Rows with the wrong shape or an
// unreadable timestamp are reported as not ok.
func entryFromRow(row []string) (Entry, bool) {
	if len(row) != 4 {
		return Entry{}, false
	}
	ts, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return Entry{}, false
	}
	return Entry{Timestamp: ts, Action: row[1], BudgetID: row[2], Details: row[3]}, true
}

// Query selects entries from the log.
type Query struct {
	// BudgetID keeps entries for that budget plus collection-wide entries.
	// Empty keeps everything.
	BudgetID string
	// Limit keeps only the newest Limit matches. Zero keeps all.
	Limit int
}

func (q Query) matches(e Entry) bool {
	return q.BudgetID == "" || e.BudgetID == "" || e.BudgetID == q.BudgetID
}

// Read returns the entries selected by q, oldest first. A missing log reads
// as empty and rows that cannot be decoded are skipped.
func Read(dataDir string, q Query) ([]Entry, error) {
	f, err := os.Open(Path(dataDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	var entries []Entry
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading activity log: %w", err)
		}
		e, ok := entryFromRow(row)
		if !ok || !q.matches(e) {
			continue
		}
		entries = append(entries, e)
	}

	if q.Limit > 0 && len(entries) > q.Limit {
		entries = slices.Clone(entries[len(entries)-q.Limit:])
	}
	return entries, nil
}

// appendEntries writes entries to the end of the log, starting a new file
// with the header row.
func appendEntries(dataDir string, entries []Entry) error {
	path := Path(dataDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		_ = cw.Write(strings.Split(Header, ","))
	}
	for _, e := range entries {
		_ = cw.Write(e.row())
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing activity log: %w", err)
	}
	return nil
}

// Log buffers the changes made during one command and writes them in a
// single append when the command finishes.
type Log struct {
	mu      sync.Mutex
	now     func() time.Time
	entries []Entry
}

// NewLog returns an empty buffered log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Record buffers one change.
func (l *Log) Record(action, budgetID, details string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		Timestamp: l.now().UTC(),
		Action:    action,
		BudgetID:  budgetID,
		Details:   details,
	})
}

// Entries returns the buffered changes.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Flush appends the buffered changes to the data directory's log and clears
// the buffer. Nothing is written when the buffer is empty.
func (l *Log) Flush(dataDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return nil
	}
	if err := appendEntries(dataDir, l.entries); err != nil {
		return err
	}
	l.entries = nil
	return nil
}
