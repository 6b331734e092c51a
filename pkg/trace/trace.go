// Package trace records chicken execution traces to SQLite: one row per
// run, one row per executed instruction. The engine itself stays
// storage-free; the CLI pairs each Step with a Record call, so a recorded
// run can be replayed against the stack viewer after the fact.
package trace

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
	_ "modernc.org/sqlite"
)

var log = commonlog.GetLogger("chicken.trace")

// Store is a SQLite-backed trace recorder.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the trace database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("trace: opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: setting busy timeout: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			program TEXT NOT NULL,
			input TEXT NOT NULL,
			normal_char INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			outcome TEXT,
			output TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS steps (
			run_id TEXT NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			pc INTEGER NOT NULL,
			opcode INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("trace: creating schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Run is an in-progress recorded execution.
type Run struct {
	id    string
	store *Store
	seq   int64
}

// Begin registers a new run and returns its recorder.
func (s *Store) Begin(program, input string, normalChar bool) (*Run, error) {
	id := uuid.NewString()
	nc := 0
	if normalChar {
		nc = 1
	}
	_, err := s.db.Exec(
		"INSERT INTO runs (id, program, input, normal_char, started_at) VALUES (?, ?, ?, ?, ?)",
		id, program, input, nc, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("trace: starting run: %w", err)
	}
	log.Debugf("recording run %s for %s", id, program)
	return &Run{id: id, store: s}, nil
}

// ID returns the run's unique identifier.
func (r *Run) ID() string {
	return r.id
}

// Record appends one executed instruction to the trace.
func (r *Run) Record(pc int, opcode int64, depth int) error {
	_, err := r.store.db.Exec(
		"INSERT INTO steps (run_id, seq, pc, opcode, depth) VALUES (?, ?, ?, ?, ?)",
		r.id, r.seq, pc, opcode, depth,
	)
	if err != nil {
		return fmt.Errorf("trace: recording step %d: %w", r.seq, err)
	}
	r.seq++
	return nil
}

// Finish stamps the run's terminal outcome: "halted" with the program
// output, or the fault kind.
func (r *Run) Finish(outcome, output string) error {
	_, err := r.store.db.Exec(
		"UPDATE runs SET outcome = ?, output = ? WHERE id = ?",
		outcome, output, r.id,
	)
	if err != nil {
		return fmt.Errorf("trace: finishing run: %w", err)
	}
	log.Debugf("run %s finished: %s", r.id, outcome)
	return nil
}

// Step is one recorded instruction, as read back from the store.
type Step struct {
	Seq    int64
	PC     int
	Opcode int64
	Depth  int
}

// Steps returns a run's recorded instructions in execution order.
func (s *Store) Steps(runID string) ([]Step, error) {
	rows, err := s.db.Query(
		"SELECT seq, pc, opcode, depth FROM steps WHERE run_id = ? ORDER BY seq",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("trace: querying steps: %w", err)
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		var st Step
		if err := rows.Scan(&st.Seq, &st.PC, &st.Opcode, &st.Depth); err != nil {
			return nil, fmt.Errorf("trace: scanning step: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// Outcome returns a run's terminal outcome and output.
func (s *Store) Outcome(runID string) (outcome, output string, err error) {
	var o, out sql.NullString
	err = s.db.QueryRow("SELECT outcome, output FROM runs WHERE id = ?", runID).Scan(&o, &out)
	if err != nil {
		return "", "", fmt.Errorf("trace: querying run: %w", err)
	}
	return o.String, out.String, nil
}
