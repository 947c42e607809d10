// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps an append-only SQLite log of language model
// interactions. Entries are for inspection and export only; nothing reads
// them back into a prompt.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// DefaultFile is the journal file name inside the store directory.
const DefaultFile = ".journal.db"

const defaultLimit = 20

// timeLayout is fixed width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Journal manages the interaction log database.
type Journal struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens or creates the journal database at path and bootstraps the
// schema.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w: %w", types.ErrIO, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db: db, path: path, logger: logger}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Path returns the database file path.
func (j *Journal) Path() string { return j.path }

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS interactions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			request_id TEXT NOT NULL,
			task TEXT NOT NULL,
			document TEXT,
			model TEXT,
			input TEXT,
			prompt_chars INTEGER,
			response TEXT,
			error TEXT,
			started_at TEXT NOT NULL,
			elapsed_ns INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_task ON interactions(task)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_document ON interactions(document)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one interaction.
func (j *Journal) Record(ctx context.Context, in types.Interaction) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO interactions (id, request_id, task, document, model, input,
			prompt_chars, response, error, started_at, elapsed_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.RequestID, string(in.Task), in.Document, in.Model, in.Input,
		in.PromptChars, in.Response, in.Error,
		in.StartedAt.UTC().Format(timeLayout), int64(in.Elapsed),
	)
	if err != nil {
		return fmt.Errorf("recording interaction %s: %w", in.ID, err)
	}
	j.logger.Debug("journal.record", "id", in.ID, "task", in.Task)
	return nil
}

// Query filters journal entries.
type Query struct {
	// Task filters by prompt shape.
	Task types.Task

	// Document filters by document name.
	Document string

	// Contains matches a substring of the input or response.
	Contains string

	// FailedOnly keeps entries that ended in an error.
	FailedOnly bool

	// Limit caps the result count. Zero uses 20; negative means no limit.
	Limit int
}

// Recent returns matching entries, newest first.
func (j *Journal) Recent(ctx context.Context, q Query) ([]types.Interaction, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, request_id, task, document, model, input, prompt_chars,
			response, error, started_at, elapsed_ns
		FROM interactions WHERE 1=1`)

	if q.Task != "" {
		qb.WriteString(` AND task = ?`)
		args = append(args, string(q.Task))
	}
	if q.Document != "" {
		qb.WriteString(` AND document = ?`)
		args = append(args, q.Document)
	}
	if q.Contains != "" {
		qb.WriteString(` AND (instr(input, ?) > 0 OR instr(response, ?) > 0)`)
		args = append(args, q.Contains, q.Contains)
	}
	if q.FailedOnly {
		qb.WriteString(` AND error IS NOT NULL AND error != ''`)
	}
	qb.WriteString(` ORDER BY started_at DESC, rowid DESC`)

	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var out []types.Interaction
	for rows.Next() {
		var (
			in                     types.Interaction
			task                   string
			doc, model, input      sql.NullString
			response, errText      sql.NullString
			promptChars, elapsedNS sql.NullInt64
			startedAt              string
		)
		if err := rows.Scan(&in.ID, &in.RequestID, &task, &doc, &model, &input,
			&promptChars, &response, &errText, &startedAt, &elapsedNS); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		in.Task = types.Task(task)
		in.Document = doc.String
		in.Model = model.String
		in.Input = input.String
		in.PromptChars = int(promptChars.Int64)
		in.Response = response.String
		in.Error = errText.String
		in.Elapsed = time.Duration(elapsedNS.Int64)
		if t, err := time.Parse(timeLayout, startedAt); err == nil {
			in.StartedAt = t
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
