package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"mshell/internal/storage"
)

const (
	defaultQueryLimit = 50
	maxQueryLimit     = 500
)

// migrations применяются по порядку; номер последней примененной хранится
// в PRAGMA user_version.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS command_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts_ms INTEGER NOT NULL,
			request_id TEXT NOT NULL,
			subject TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			command TEXT NOT NULL,
			args TEXT NOT NULL DEFAULT '[]',
			cwd TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON command_runs(ts_ms);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_status_ts ON command_runs(status, ts_ms);`,
	},
	{
		`CREATE INDEX IF NOT EXISTS idx_runs_command_ts ON command_runs(command, ts_ms);`,
	},
}

// Store хранит журнал исполненных команд в SQLite.
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open открывает базу и доводит схему до последней версии.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		for _, stmt := range migrations[i] {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d failed: %w", i+1, err)
			}
		}
		// PRAGMA не принимает параметры.
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: set version: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", i+1, err)
		}
	}
	return nil
}

// SaveAudit сохраняет запись об исполнении команды.
func (s *Store) SaveAudit(ctx context.Context, ev storage.AuditEvent) error {
	ts := ev.TS
	if ts.IsZero() {
		ts = time.Now()
	}
	args := ev.Args
	if args == nil {
		args = []string{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO command_runs(ts_ms, request_id, subject, source, command, args, cwd, status, error, duration_ms)
VALUES(?,?,?,?,?,?,?,?,?,?)`,
		ts.UnixMilli(), ev.RequestID, ev.Subject, ev.Source, ev.Command, string(argsJSON), ev.Cwd, ev.Status, ev.Error, ev.DurationMS)
	if err != nil {
		return fmt.Errorf("insert command run: %w", err)
	}
	return nil
}

// QueryAudit возвращает записи по фильтрам, новые первыми.
func (s *Store) QueryAudit(ctx context.Context, q storage.AuditQuery) ([]storage.AuditEvent, error) {
	query, params := buildQuery(q)
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query command runs: %w", err)
	}
	defer rows.Close()

	var events []storage.AuditEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate command runs: %w", err)
	}
	return events, nil
}

func buildQuery(q storage.AuditQuery) (string, []interface{}) {
	var (
		conds  []string
		params []interface{}
	)
	if !q.From.IsZero() {
		conds = append(conds, "ts_ms >= ?")
		params = append(params, q.From.UnixMilli())
	}
	if !q.To.IsZero() {
		conds = append(conds, "ts_ms <= ?")
		params = append(params, q.To.UnixMilli())
	}
	for _, f := range []struct{ column, value string }{
		{"subject", q.Subject},
		{"command", q.Command},
		{"status", q.Status},
	} {
		if f.value != "" {
			conds = append(conds, f.column+" = ?")
			params = append(params, f.value)
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	limit = min(limit, maxQueryLimit)

	var b strings.Builder
	b.WriteString(`SELECT id, ts_ms, request_id, subject, source, command, args, cwd, status, error, duration_ms FROM command_runs`)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY ts_ms DESC, id DESC LIMIT ?")
	params = append(params, limit)
	return b.String(), params
}

func scanEvent(rows *sql.Rows) (storage.AuditEvent, error) {
	var (
		ev       storage.AuditEvent
		tsMS     int64
		argsJSON string
	)
	err := rows.Scan(&ev.ID, &tsMS, &ev.RequestID, &ev.Subject, &ev.Source, &ev.Command,
		&argsJSON, &ev.Cwd, &ev.Status, &ev.Error, &ev.DurationMS)
	if err != nil {
		return ev, fmt.Errorf("scan command run: %w", err)
	}
	if err := json.Unmarshal([]byte(argsJSON), &ev.Args); err != nil {
		return ev, fmt.Errorf("decode args of run %d: %w", ev.ID, err)
	}
	if len(ev.Args) == 0 {
		ev.Args = nil
	}
	ev.TS = time.UnixMilli(tsMS).UTC()
	return ev, nil
}

// Write реализует core.AuditSink.
func (s *Store) Write(ctx context.Context, ev storage.AuditEvent) error {
	return s.SaveAudit(ctx, ev)
}

// Close закрывает соединение.
func (s *Store) Close() error {
	return s.db.Close()
}
