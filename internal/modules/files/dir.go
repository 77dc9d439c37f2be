package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	urootmkdir "github.com/u-root/u-root/pkg/core/mkdir"

	"mshell/internal/core"
)

// cd меняет текущий каталог. Каталог меняется одним вызовом Chdir только
// после полного разрешения пути.
func cd(ctx context.Context, env *core.Env, args []string) error {
	if len(args) != 1 {
		return core.Usage("cd <directory>")
	}
	target, err := env.Resolver().Resolve(args[0])
	if err != nil {
		return err
	}
	if err := env.WorkDir.Chdir(target); err != nil {
		return core.NewSyscallError("unable to change directory to", target, err)
	}
	return nil
}

func pwd(ctx context.Context, env *core.Env, args []string) error {
	if len(args) != 0 {
		return core.Usage("pwd")
	}
	dir, err := env.WorkDir.Getwd()
	if err != nil {
		return fmt.Errorf("unable to get current directory: %v: %w", err, core.ErrNotFound)
	}
	fmt.Fprintln(env.Out, dir)
	return nil
}

func mkdir(ctx context.Context, env *core.Env, args []string) error {
	const usage = "mkdir [-p] [-v] [-m MODE] <path> [<path> ...]"
	if len(args) == 0 {
		return core.Usage(usage)
	}

	var (
		parents bool
		verbose bool
		mode    os.FileMode
		hasMode bool
		dirs    []string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-p", "--parents":
			parents = true
		case "-v", "--verbose":
			verbose = true
		case "-m", "--mode":
			if i+1 >= len(args) {
				return core.Usage(usage)
			}
			i++
			parsed, err := strconv.ParseUint(args[i], 8, 32)
			if err != nil {
				return fmt.Errorf("invalid mode '%s'", args[i])
			}
			mode, hasMode = os.FileMode(parsed), true
		default:
			if len(arg) > 1 && arg[0] == '-' {
				return fmt.Errorf("invalid option -- '%s'", arg)
			}
			dirs = append(dirs, arg)
		}
	}
	if len(dirs) == 0 {
		return fmt.Errorf("missing operand: %w", core.Usage(usage))
	}

	for _, dir := range dirs {
		path, err := env.Abs(dir)
		if err != nil {
			return err
		}
		cmdArgs := []string{path}
		if parents {
			cmdArgs = []string{"-p", path}
		}
		if err := runCore(ctx, env, urootmkdir.New(), "cannot create directory", dir, cmdArgs...); err != nil {
			return err
		}
		if hasMode {
			if err := os.Chmod(path, mode); err != nil {
				return core.NewSyscallError("failed to set permissions for", dir, err)
			}
		}
		if verbose {
			fmt.Fprintf(env.Out, "created directory '%s'\n", dir)
		}
	}
	return nil
}

func rmdir(ctx context.Context, env *core.Env, args []string) error {
	if len(args) == 0 {
		return core.Usage("rmdir <path> [<path> ...]")
	}
	for _, dir := range args {
		path, err := env.Abs(dir)
		if err != nil {
			return err
		}
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to remove '%s': %w", dir, core.ErrNotFound)
			}
			return core.NewSyscallError("failed to remove", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("failed to remove '%s': not a directory", dir)
		}
		if err := os.Remove(path); err != nil {
			return core.NewSyscallError("failed to remove", dir, err)
		}
	}
	return nil
}
