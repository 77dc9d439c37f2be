package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	urootcat "github.com/u-root/u-root/pkg/core/cat"
	urootcp "github.com/u-root/u-root/pkg/core/cp"
	uroottouch "github.com/u-root/u-root/pkg/core/touch"

	"mshell/internal/core"
)

func cat(ctx context.Context, env *core.Env, args []string) error {
	if len(args) == 0 {
		return core.Usage("cat <path> [<path> ...]")
	}
	for _, name := range args {
		if err := catFile(ctx, env, name); err != nil {
			return err
		}
	}
	return nil
}

// catFile печатает файл; последняя строка без перевода строки тоже
// завершается им.
func catFile(ctx context.Context, env *core.Env, name string) error {
	path, err := env.Abs(name)
	if err != nil {
		return err
	}
	out := &lastByteWriter{w: env.Out}
	fileEnv := *env
	fileEnv.Out = out
	if err := runCore(ctx, &fileEnv, urootcat.New(), "unable to open file", name, path); err != nil {
		return err
	}
	if out.last != 0 && out.last != '\n' {
		if _, err := io.WriteString(env.Out, "\n"); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func cp(ctx context.Context, env *core.Env, args []string) error {
	if len(args) != 2 {
		return core.Usage("cp <source file> <destination file/dir>")
	}
	src, err := env.Abs(args[0])
	if err != nil {
		return err
	}
	dst, err := env.Abs(args[1])
	if err != nil {
		return err
	}

	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("source file '%s' does not exist: %w", args[0], core.ErrNotFound)
		}
		return core.NewSyscallError("unable to stat source file", args[0], err)
	}
	if info.IsDir() {
		return errors.New("copying directories is not supported")
	}
	target := args[1]
	dstInfo, err := os.Stat(dst)
	if err == nil && dstInfo.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
		target = filepath.Join(target, filepath.Base(src))
		dstInfo, err = os.Stat(dst)
	}
	// Копирование файла в самого себя обнулило бы его при открытии приемника.
	if err == nil && os.SameFile(info, dstInfo) {
		return fmt.Errorf("'%s' and '%s' are the same file", args[0], target)
	}
	return runCore(ctx, env, urootcp.New(), "failed to copy to", target, src, dst)
}

func touch(ctx context.Context, env *core.Env, args []string) error {
	if len(args) == 0 {
		return core.Usage("touch <file> [<file> ...]")
	}
	for _, name := range args {
		path, err := env.Abs(name)
		if err != nil {
			return err
		}
		if err := runCore(ctx, env, uroottouch.New(), "cannot touch", name, path); err != nil {
			return err
		}
	}
	return nil
}

func truncate(ctx context.Context, env *core.Env, args []string) error {
	if len(args) != 2 {
		return core.Usage("truncate <file> <size>")
	}
	size, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || size < 0 {
		return fmt.Errorf("invalid size value '%s'", args[1])
	}
	path, err := env.Abs(args[0])
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return core.NewSyscallError("unable to open file", args[0], err)
	}
	defer f.Close()
	if err := f.Truncate(size); err != nil {
		return core.NewSyscallError("unable to set file size for", args[0], err)
	}
	return nil
}
