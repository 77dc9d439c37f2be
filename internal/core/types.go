package core

import "context"

// Handler исполняет одну встроенную команду. args не содержит имени команды.
// Весь вывод пишется в env.Out; ошибка отображается циклом как "Error: <msg>".
type Handler func(ctx context.Context, env *Env, args []string) error

// CommandSpec описывает встроенную команду реестра.
type CommandSpec struct {
	Name        string
	Handler     Handler
	Description string
	// Aliases перечисляет дополнительные имена того же обработчика.
	Aliases []string
}

// Entry описывает команду для интроспекции реестра.
type Entry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases,omitempty"`
}

// CommandProvider определяет контракт для модулей с командами.
type CommandProvider interface {
	Name() string
	Init(ctx context.Context) error
	Commands() []CommandSpec
}

// Introspector дает read-only доступ к реестру (для help).
type Introspector interface {
	Entries() []Entry
	Describe(name string) (string, bool)
}
