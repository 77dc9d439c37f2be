package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"mshell/internal/core"
)

func ls(ctx context.Context, env *core.Env, args []string) error {
	var showHidden, long bool
	target := "."
	for _, arg := range args {
		switch arg {
		case "-a":
			showHidden = true
		case "-l":
			long = true
		case "-la", "-al":
			showHidden, long = true, true
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("unknown option: %s", arg)
			}
			target = arg
		}
	}

	path, err := env.Abs(target)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("directory does not exist: %s: %w", target, core.ErrNotFound)
		}
		return core.NewSyscallError("unable to read directory", target, err)
	}
	// os.ReadDir возвращает записи, отсортированные по имени.
	entries, err := os.ReadDir(path)
	if err != nil {
		return core.NewSyscallError("unable to read directory", target, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if !long {
			if entry.IsDir() {
				fmt.Fprintf(env.Out, "%s/\n", name)
			} else {
				fmt.Fprintln(env.Out, name)
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return core.NewSyscallError("unable to obtain file information for", name, err)
		}
		fmt.Fprintf(env.Out, "%s%s %s %s\n", fileType(info), permString(info.Mode().Perm()), formatSize(info.Size()), name)
	}
	return nil
}

func fileType(info fs.FileInfo) string {
	if info.IsDir() {
		return "d"
	}
	return "-"
}

func permString(perm fs.FileMode) string {
	const rwx = "rwxrwxrwx"
	var b strings.Builder
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b.WriteByte(rwx[i])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

func formatSize(size int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case size < kb:
		return fmt.Sprintf("%dB", size)
	case size < mb:
		return fmt.Sprintf("%.1fK", float64(size)/kb)
	case size < gb:
		return fmt.Sprintf("%.1fM", float64(size)/mb)
	default:
		return fmt.Sprintf("%.1fG", float64(size)/gb)
	}
}
