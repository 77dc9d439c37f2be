package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	errCommandExists    = errors.New("command already registered")
	errInvalidArguments = errors.New("invalid arguments")
)

// Registry хранит встроенные команды. Заполняется один раз в NewRegistry
// и после этого только читается.
type Registry struct {
	commands map[string]CommandSpec
	primary  []string
}

// NewRegistry инициализирует модули и собирает их команды; имена и алиасы
// должны быть уникальны.
func NewRegistry(ctx context.Context, providers ...CommandProvider) (*Registry, error) {
	r := &Registry{commands: make(map[string]CommandSpec)}
	for _, provider := range providers {
		if provider == nil {
			return nil, fmt.Errorf("provider is nil: %w", errInvalidArguments)
		}
		name := provider.Name()
		if name == "" {
			return nil, fmt.Errorf("provider name is empty: %w", errInvalidArguments)
		}
		if err := provider.Init(ctx); err != nil {
			return nil, fmt.Errorf("init %s: %w", name, err)
		}
		for _, spec := range provider.Commands() {
			if err := r.add(spec); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	sort.Strings(r.primary)
	return r, nil
}

func (r *Registry) add(spec CommandSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("command name is empty: %w", errInvalidArguments)
	}
	if spec.Handler == nil {
		return fmt.Errorf("command %s has no handler: %w", spec.Name, errInvalidArguments)
	}
	names := append([]string{spec.Name}, spec.Aliases...)
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("command %s has empty alias: %w", spec.Name, errInvalidArguments)
		}
		if _, exists := r.commands[name]; exists {
			return fmt.Errorf("%s: %w", name, errCommandExists)
		}
	}
	for _, name := range names {
		r.commands[name] = spec
	}
	r.primary = append(r.primary, spec.Name)
	return nil
}

// Lookup ищет команду по точному имени или алиасу.
func (r *Registry) Lookup(name string) (CommandSpec, bool) {
	spec, ok := r.commands[name]
	return spec, ok
}

// Entries возвращает команды, отсортированные по имени (без алиасов).
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.primary))
	for _, name := range r.primary {
		spec := r.commands[name]
		entries = append(entries, Entry{
			Name:        spec.Name,
			Description: spec.Description,
			Aliases:     append([]string(nil), spec.Aliases...),
		})
	}
	return entries
}

// Describe возвращает описание команды.
func (r *Registry) Describe(name string) (string, bool) {
	spec, ok := r.commands[name]
	if !ok {
		return "", false
	}
	return spec.Description, true
}

// Len возвращает число команд без учета алиасов.
func (r *Registry) Len() int {
	return len(r.primary)
}
