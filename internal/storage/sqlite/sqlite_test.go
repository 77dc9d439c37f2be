package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"mshell/internal/storage"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSaveAndQueryAudit(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "audit.db"))
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)

	events := []storage.AuditEvent{
		{RequestID: "r1", Subject: "alice", Source: "repl", Command: "ls", Args: []string{"-la", "/tmp"}, Cwd: "/home/alice", Status: "ok", DurationMS: 3, TS: base},
		{RequestID: "r2", Subject: "alice", Source: "repl", Command: "cd", Args: []string{"/nope"}, Cwd: "/home/alice", Status: "error", Error: "unable to change directory to '/nope': no such file or directory", TS: base.Add(time.Minute)},
		{RequestID: "r3", Subject: "bob", Source: "exec", Command: "mount", Status: "denied", TS: base.Add(2 * time.Minute)},
	}
	for _, ev := range events {
		if err := st.SaveAudit(ctx, ev); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	all, err := st.QueryAudit(ctx, storage.AuditQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].RequestID != "r3" || all[2].RequestID != "r1" {
		t.Fatalf("events must be newest first: %s, %s", all[0].RequestID, all[2].RequestID)
	}
	first := all[2]
	if !reflect.DeepEqual(first.Args, []string{"-la", "/tmp"}) || first.Cwd != "/home/alice" || first.DurationMS != 3 {
		t.Fatalf("columns not preserved: %#v", first)
	}
	if !first.TS.Equal(base) || first.ID == 0 {
		t.Fatalf("timestamp or id not preserved: %#v", first)
	}
	if all[0].Args != nil {
		t.Fatalf("empty args must read back as nil: %#v", all[0].Args)
	}

	failed, err := st.QueryAudit(ctx, storage.AuditQuery{Status: "error"})
	if err != nil {
		t.Fatalf("query by status: %v", err)
	}
	if len(failed) != 1 || failed[0].Command != "cd" || failed[0].Error == "" {
		t.Fatalf("unexpected status filter result: %#v", failed)
	}

	byCommand, err := st.QueryAudit(ctx, storage.AuditQuery{Command: "ls", Subject: "alice"})
	if err != nil {
		t.Fatalf("query by command: %v", err)
	}
	if len(byCommand) != 1 || byCommand[0].RequestID != "r1" {
		t.Fatalf("unexpected command filter result: %#v", byCommand)
	}

	limited, err := st.QueryAudit(ctx, storage.AuditQuery{Limit: 2})
	if err != nil {
		t.Fatalf("query with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 events, got %d", len(limited))
	}

	window, err := st.QueryAudit(ctx, storage.AuditQuery{From: base.Add(30 * time.Second), To: base.Add(90 * time.Second)})
	if err != nil {
		t.Fatalf("query window: %v", err)
	}
	if len(window) != 1 || window[0].RequestID != "r2" {
		t.Fatalf("unexpected window result: %#v", window)
	}
}

func TestWriteDefaultsTimestamp(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "audit.db"))
	ctx := context.Background()
	if err := st.Write(ctx, storage.AuditEvent{Command: "pwd", Status: "ok"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := st.QueryAudit(ctx, storage.AuditQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].TS.IsZero() {
		t.Fatalf("timestamp must be filled: %#v", got)
	}
}

func TestReopenKeepsSchemaAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.SaveAudit(context.Background(), storage.AuditEvent{Command: "echo", Status: "ok"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	var version int
	if err := reopened.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != len(migrations) {
		t.Fatalf("schema version = %d, want %d", version, len(migrations))
	}
	got, err := reopened.QueryAudit(context.Background(), storage.AuditQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows lost after reopen: %d", len(got))
	}
}

func TestBuildQuery(t *testing.T) {
	query, params := buildQuery(storage.AuditQuery{Status: "ok", Limit: 10000})
	want := `SELECT id, ts_ms, request_id, subject, source, command, args, cwd, status, error, duration_ms FROM command_runs WHERE status = ? ORDER BY ts_ms DESC, id DESC LIMIT ?`
	if query != want {
		t.Fatalf("unexpected query:\n%s", query)
	}
	if len(params) != 2 || params[0] != "ok" || params[1] != maxQueryLimit {
		t.Fatalf("unexpected params: %#v", params)
	}
}
