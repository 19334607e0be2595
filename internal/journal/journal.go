package journal

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/fpcapture/internal/clock"
)

//go:embed schema.sql
var schemaSQL string

const (
	dialectSQLite = "sqlite3"
	tableEntries  = "journal_entries"
	colInvocation = "invocation"
	colSeq        = "seq"
	colCommand    = "command"
	colLine       = "line"
	colCreatedMS  = "created_ms"
)

// Entry is one journaled line.
type Entry struct {
	Invocation string `db:"invocation"`
	Seq        int64  `db:"seq"`
	Command    string `db:"command"`
	Line       string `db:"line"`
	CreatedMS  int64  `db:"created_ms"`
}

// Journal is the SQLite-backed audit trail.
type Journal struct {
	db *sqlx.DB
}

// Open creates or opens a journal database at path.
//
// The database is configured with:
//   - WAL mode so a parent process can read while a command writes
//   - 5-second busy timeout for lock contention between processes
//
// This function is idempotent - safe to call on an existing journal.
func Open(path string) (*Journal, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append inserts one entry. Duplicate (invocation, seq) pairs are an error.
func (j *Journal) Append(ctx context.Context, e Entry) error {
	query, args, err := goqu.Dialect(dialectSQLite).
		Insert(tableEntries).
		Rows(goqu.Record{
			colInvocation: e.Invocation,
			colSeq:        e.Seq,
			colCommand:    e.Command,
			colLine:       e.Line,
			colCreatedMS:  e.CreatedMS,
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build journal insert: %w", err)
	}

	if _, err := j.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

// Entries returns the lines of one invocation in seq order.
func (j *Journal) Entries(ctx context.Context, invocation string) ([]Entry, error) {
	query, args, err := goqu.Dialect(dialectSQLite).
		From(tableEntries).
		Select(colInvocation, colSeq, colCommand, colLine, colCreatedMS).
		Where(goqu.C(colInvocation).Eq(invocation)).
		Order(goqu.C(colSeq).Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build journal select: %w", err)
	}

	var entries []Entry
	if err := j.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("read journal entries: %w", err)
	}
	return entries, nil
}

// Invocations returns every invocation id in the journal, oldest first.
func (j *Journal) Invocations(ctx context.Context) ([]string, error) {
	query, args, err := goqu.Dialect(dialectSQLite).
		From(tableEntries).
		Select(colInvocation).
		GroupBy(colInvocation).
		Order(goqu.MIN(colCreatedMS).Asc(), goqu.C(colInvocation).Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build invocation select: %w", err)
	}

	var ids []string
	if err := j.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("read invocations: %w", err)
	}
	return ids, nil
}

// Recorder journals the lines of one invocation. It implements
// report.Sink.
type Recorder struct {
	ctx        context.Context
	journal    *Journal
	invocation string
	command    string
	seq        *clock.Sequence
	clock      clock.Clock
}

// Recorder creates a recorder for one command run.
func (j *Journal) Recorder(ctx context.Context, invocation, command string, c clock.Clock) *Recorder {
	return &Recorder{
		ctx:        ctx,
		journal:    j,
		invocation: invocation,
		command:    command,
		seq:        clock.NewSequence(),
		clock:      c,
	}
}

// Invocation returns the invocation id lines are recorded under.
func (r *Recorder) Invocation() string {
	return r.invocation
}

// RecordLine appends line under the next seq.
func (r *Recorder) RecordLine(line []byte) error {
	return r.journal.Append(r.ctx, Entry{
		Invocation: r.invocation,
		Seq:        r.seq.Next(),
		Command:    r.command,
		Line:       string(line),
		CreatedMS:  clock.Millis(r.clock.Now()),
	})
}
