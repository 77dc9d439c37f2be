package help

import (
	"context"
	"fmt"
	"strings"

	"mshell/internal/core"
)

// Module предоставляет команду help поверх интроспекции реестра.
type Module struct{}

func (m *Module) Name() string { return "help" }

func (m *Module) Init(ctx context.Context) error { //nolint:revive // инициализация пока тривиальна
	return nil
}

// Commands возвращает команды модуля.
func (m *Module) Commands() []core.CommandSpec {
	return []core.CommandSpec{
		{Name: "help", Handler: help, Description: "Use help [command] view help for a specific command"},
	}
}

func help(ctx context.Context, env *core.Env, args []string) error {
	if env.Commands == nil {
		return fmt.Errorf("command registry is not available: %w", core.ErrNotFound)
	}
	switch len(args) {
	case 0:
		fmt.Fprintln(env.Out, "Available commands (type 'exit' to leave):")
		for _, e := range env.Commands.Entries() {
			name := e.Name
			if len(e.Aliases) > 0 {
				name += " (" + strings.Join(e.Aliases, ", ") + ")"
			}
			fmt.Fprintf(env.Out, "  %-20s %s\n", name, e.Description)
		}
		return nil
	case 1:
		desc, ok := env.Commands.Describe(args[0])
		if !ok {
			return fmt.Errorf("no help for '%s': %w", args[0], core.ErrUnknownCommand)
		}
		fmt.Fprintf(env.Out, "%s: %s\n", args[0], desc)
		return nil
	default:
		return core.Usage("help [command]")
	}
}
