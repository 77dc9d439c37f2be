package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"mshell/internal/config"
	"mshell/internal/core"
	"mshell/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewAppRegistersBuiltins(t *testing.T) {
	a, err := NewApp(context.Background(), config.Default(), testLogger())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	if a.Store != nil {
		t.Fatalf("audit is off by default")
	}
	for _, name := range []string{"cd", "pwd", "ls", "cat", "cp", "cmp", "mkdir", "rmdir", "touch", "truncate", "echo", "printf", "ps", "free", "uptime", "mount", "umount", "unmount", "help"} {
		if _, ok := a.Registry.Lookup(name); !ok {
			t.Fatalf("command %s is not registered", name)
		}
	}
	if _, ok := a.Registry.Lookup(core.ExitCommand); ok {
		t.Fatalf("exit must be handled by the loop, not the registry")
	}
}

func TestShellUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Shell.Prompt = "$ "
	cfg.Shell.Banner = ""
	cfg.Shell.Deny = []string{"mount"}
	a, err := NewApp(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	var out bytes.Buffer
	sh := a.NewShell(strings.NewReader("mount /x tmpfs\nexit\n"), &out, "repl")
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "$ Error: mount: command is not allowed\n$ " {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestShellWritesAuditWhenEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.Audit.Enabled = true
	cfg.Audit.SQLitePath = filepath.Join(t.TempDir(), "audit.db")
	a, err := NewApp(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	sh := a.NewShell(strings.NewReader(""), io.Discard, "exec")
	if _, err := sh.Dispatch(context.Background(), "nope"); !errors.Is(err, core.ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if _, err := sh.Dispatch(context.Background(), "pwd"); err != nil {
		t.Fatalf("pwd: %v", err)
	}
	events, err := a.Store.QueryAudit(context.Background(), storage.AuditQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("only pwd must be recorded, got %#v", events)
	}
	ev := events[0]
	if ev.Command != "pwd" || ev.Status != core.StatusOK || ev.Subject == "" || ev.Cwd == "" {
		t.Fatalf("unexpected audit: %#v", ev)
	}
}
