package text

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mshell/internal/core"
	"mshell/internal/testutil"
)

func newEnv(dir string) (*core.Env, *bytes.Buffer) {
	var out bytes.Buffer
	return &core.Env{Out: &out, WorkDir: testutil.NewWorkDir(dir)}, &out
}

func TestEcho(t *testing.T) {
	env, out := newEnv("/")
	if err := echo(context.Background(), env, []string{"hello", "world"}); err != nil {
		t.Fatalf("echo: %v", err)
	}
	if out.String() != "hello world\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := echo(context.Background(), env, nil); err != nil {
		t.Fatalf("echo without args: %v", err)
	}
	if out.String() != "\n" {
		t.Fatalf("expected empty line, got %q", out.String())
	}
}

func TestEchoRedirect(t *testing.T) {
	tmp := t.TempDir()
	env, out := newEnv(tmp)
	if err := echo(context.Background(), env, []string{"saved", "text", ">", "note.txt"}); err != nil {
		t.Fatalf("echo redirect: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("redirected output must not reach stdout: %q", out.String())
	}
	data, err := os.ReadFile(filepath.Join(tmp, "note.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "saved text\n" {
		t.Fatalf("unexpected file content: %q", data)
	}

	if err := echo(context.Background(), env, []string{"x", ">"}); err == nil {
		t.Fatalf("expected missing filename error")
	}
	if err := echo(context.Background(), env, []string{"x", ">", "no/such/dir/f"}); !errors.Is(err, core.ErrSystemCall) {
		t.Fatalf("expected ErrSystemCall, got %v", err)
	}
}

func TestPrintf(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{`"name=%s`, `age=%d"`, "bob", "42"}, "Formatted: name=bob age=42\n"},
		{[]string{`"pi=%f"`, "3.14"}, "Formatted: pi=3.14\n"},
		{[]string{`"100%%"`}, "Formatted: 100%\n"},
		{[]string{`"%i%%"`, "7"}, "Formatted: 7%\n"},
		{[]string{"plain"}, "Formatted: plain\n"},
		{[]string{"%s!", "hey"}, "Formatted: hey!\n"},
	}
	for _, tc := range cases {
		env, out := newEnv("/")
		if err := printf(context.Background(), env, tc.args); err != nil {
			t.Fatalf("printf %v: %v", tc.args, err)
		}
		if out.String() != tc.want {
			t.Fatalf("printf %v = %q, want %q", tc.args, out.String(), tc.want)
		}
	}
}

func TestPrintfErrors(t *testing.T) {
	cases := [][]string{
		{`"%d"`, "abc"},
		{`"%f"`, "x"},
		{`"%s %s"`, "one"},
		{`"%s"`, "one", "two"},
		{`"%q"`, "v"},
		{`"tail %"`},
		{`"open`, "ended"},
	}
	for _, args := range cases {
		env, out := newEnv("/")
		if err := printf(context.Background(), env, args); err == nil {
			t.Fatalf("printf %v: expected error, got output %q", args, out.String())
		}
	}

	env, _ := newEnv("/")
	if err := printf(context.Background(), env, nil); !errors.Is(err, core.ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, _, err := splitFormat(`"never closed`); !errors.Is(err, errUnterminatedFormat) {
		t.Fatalf("expected errUnterminatedFormat, got %v", err)
	}
}
