package core

import (
	"errors"
	"fmt"
)

// ErrForbidden возвращается, если политика запрещает команду.
var ErrForbidden = errors.New("command is not allowed")

// Subject описывает, кто и откуда исполняет команду.
type Subject struct {
	Source string
	ID     string
}

// Authorizer отвечает за решение доступа к команде. command содержит
// основное имя команды, алиасы к нему уже сведены.
type Authorizer interface {
	Authorize(subject Subject, command string) error
}

// CommandPolicy разрешает команды по спискам allow/deny.
// Пустой allow разрешает все, что не в deny.
type CommandPolicy struct {
	allowed map[string]struct{}
	denied  map[string]struct{}
}

// NewCommandPolicy создает политику; пустые имена пропускаются.
func NewCommandPolicy(allow, deny []string) *CommandPolicy {
	return &CommandPolicy{allowed: toSet(allow), denied: toSet(deny)}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Authorize возвращает ошибку, если команда запрещена.
func (p *CommandPolicy) Authorize(subject Subject, command string) error {
	if command == "" {
		return fmt.Errorf("empty command: %w", errInvalidArguments)
	}
	if _, ok := p.denied[command]; ok {
		return fmt.Errorf("%s: %w", command, ErrForbidden)
	}
	if len(p.allowed) == 0 {
		return nil
	}
	if _, ok := p.allowed[command]; !ok {
		return fmt.Errorf("%s: %w", command, ErrForbidden)
	}
	return nil
}
