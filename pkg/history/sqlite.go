package history

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// SQLiteStore is a Store backed by SQLite.
//
// It expects an *sql.DB opened with a SQLite driver (for example
// "modernc.org/sqlite"). The caller is responsible for importing the driver:
//
//	import _ "modernc.org/sqlite"
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore initializes the required schema in the given database and
// returns a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			workflow TEXT NOT NULL,
			start_step TEXT NOT NULL,
			status TEXT NOT NULL,
			steps_run INTEGER NOT NULL,
			steps BLOB,
			error TEXT,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		);`,
	)
	return err
}

func (s *SQLiteStore) SaveRun(rec *RunRecord) error {
	steps, err := encodeSteps(rec.Steps)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO runs (id, workflow, start_step, status, steps_run, steps, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Workflow,
		rec.Start,
		string(rec.Status),
		rec.StepsRun,
		steps,
		rec.Error,
		unixNano(rec.StartedAt),
		unixNano(rec.FinishedAt),
	)
	return err
}

func (s *SQLiteStore) UpdateRun(rec *RunRecord) error {
	steps, err := encodeSteps(rec.Steps)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE runs
		SET workflow = ?, start_step = ?, status = ?, steps_run = ?, steps = ?, error = ?, started_at = ?, finished_at = ?
		WHERE id = ?`,
		rec.Workflow,
		rec.Start,
		string(rec.Status),
		rec.StepsRun,
		steps,
		rec.Error,
		unixNano(rec.StartedAt),
		unixNano(rec.FinishedAt),
		rec.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRunNotFound
	}
	return nil
}

func (s *SQLiteStore) GetRun(id string) (*RunRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, workflow, start_step, status, steps_run, steps, error, started_at, finished_at
		FROM runs
		WHERE id = ?`,
		id,
	)

	rec, err := scanRun(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *SQLiteStore) ListRuns(filter Filter) ([]*RunRecord, error) {
	query := `
		SELECT id, workflow, start_step, status, steps_run, steps, error, started_at, finished_at
		FROM runs`
	var args []any
	var clauses []string

	if filter.Workflow != "" {
		clauses = append(clauses, "workflow = ?")
		args = append(args, filter.Workflow)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if len(clauses) > 0 {
		query = query + " WHERE " + strings.Join(clauses, " AND ")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		rec, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

func scanRun(scan func(dest ...any) error) (*RunRecord, error) {
	var rec RunRecord
	var statusStr string
	var steps []byte
	var errStr sql.NullString
	var startedAt, finishedAt int64

	if err := scan(&rec.ID, &rec.Workflow, &rec.Start, &statusStr, &rec.StepsRun, &steps, &errStr, &startedAt, &finishedAt); err != nil {
		return nil, err
	}

	rec.Status = Status(statusStr)
	rec.StartedAt = fromUnixNano(startedAt)
	rec.FinishedAt = fromUnixNano(finishedAt)
	if errStr.Valid {
		rec.Error = errStr.String
	}

	decoded, err := decodeSteps(steps)
	if err != nil {
		return nil, err
	}
	rec.Steps = decoded

	return &rec, nil
}

// Zero times are stored as 0 so an unfinished run round-trips as the zero
// time rather than a nonsense instant.
func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
