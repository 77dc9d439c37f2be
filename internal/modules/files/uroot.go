package files

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	urootcore "github.com/u-root/u-root/pkg/core"

	"mshell/internal/core"
)

// configureCommand направляет утилиту u-root в текущий каталог оболочки и
// ее вывод в env.Out.
func configureCommand(env *core.Env, cmd urootcore.Command, stderr io.Writer) error {
	cwd, err := env.WorkDir.Getwd()
	if err != nil {
		return core.NewSyscallError("unable to get current directory", ".", err)
	}
	cmd.SetIO(strings.NewReader(""), env.Out, stderr)
	cmd.SetWorkingDir(cwd)
	cmd.SetLookupEnv(os.LookupEnv)
	return nil
}

// runCore исполняет утилиту и приводит ее отказ к SyscallError. Часть утилит
// сообщает об ошибке только в stderr, такой текст тоже считается отказом.
func runCore(ctx context.Context, env *core.Env, cmd urootcore.Command, op, name string, args ...string) error {
	var stderr bytes.Buffer
	if err := configureCommand(env, cmd, &stderr); err != nil {
		return err
	}
	err := cmd.RunContext(ctx, args...)
	if err == nil && stderr.Len() > 0 {
		err = errors.New(strings.TrimSpace(stderr.String()))
	}
	if err != nil {
		return core.NewSyscallError(op, name, err)
	}
	return nil
}

// lastByteWriter запоминает последний записанный байт.
type lastByteWriter struct {
	w    io.Writer
	last byte
}

func (l *lastByteWriter) Write(p []byte) (int, error) {
	n, err := l.w.Write(p)
	if n > 0 {
		l.last = p[n-1]
	}
	return n, err
}
