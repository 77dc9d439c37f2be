package text

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mshell/internal/core"
)

// Module предоставляет команды вывода текста.
type Module struct{}

func (m *Module) Name() string { return "text" }

func (m *Module) Init(ctx context.Context) error { //nolint:revive // инициализация пока тривиальна
	return nil
}

// Commands возвращает команды модуля.
func (m *Module) Commands() []core.CommandSpec {
	return []core.CommandSpec{
		{Name: "echo", Handler: echo, Description: "Write arguments to the standard output, usage: echo [parameters...] [> file]"},
		{Name: "printf", Handler: printf, Description: `Formats and prints args under control of the format, usage: printf "string<%s, %d, %f>" [arg...]`},
	}
}

// echo печатает аргументы; "> file" перенаправляет вывод в файл.
func echo(ctx context.Context, env *core.Env, args []string) error {
	pos := -1
	for i, arg := range args {
		if arg == ">" {
			pos = i
			break
		}
	}
	if pos < 0 {
		fmt.Fprintln(env.Out, strings.Join(args, " "))
		return nil
	}
	if pos+1 >= len(args) {
		return errors.New("missing filename after '>'")
	}
	name := args[pos+1]
	path, err := env.Abs(name)
	if err != nil {
		return err
	}
	content := strings.Join(args[:pos], " ") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return core.NewSyscallError("failed to write to file", name, err)
	}
	return nil
}
