package core

import (
	"fmt"
	"strings"
)

// Resolver вычисляет целевой каталог для cd. Разбор чисто лексический:
// файловая система не опрашивается, кроме текущего и домашнего каталогов.
type Resolver struct {
	Getwd func() (string, error)
	Home  HomeFunc
}

// Resolve возвращает абсолютный нормализованный путь для target.
func (r Resolver) Resolve(target string) (string, error) {
	switch {
	case target == ".":
		return r.cwd()
	case target == "~" || strings.HasPrefix(target, "~/"):
		home, err := r.home()
		if err != nil {
			return "", err
		}
		return r.walk(home + "/" + strings.TrimPrefix(target[1:], "/"))
	default:
		return r.walk(target)
	}
}

func (r Resolver) cwd() (string, error) {
	if r.Getwd == nil {
		return "", fmt.Errorf("unable to get current directory: %w", ErrNotFound)
	}
	dir, err := r.Getwd()
	if err != nil {
		return "", fmt.Errorf("unable to get current directory: %v: %w", err, ErrNotFound)
	}
	return dir, nil
}

func (r Resolver) home() (string, error) {
	if r.Home == nil {
		return "", ErrNoHomeDirectory
	}
	home, ok := r.Home()
	if !ok || home == "" {
		return "", ErrNoHomeDirectory
	}
	return home, nil
}

// walk применяет компоненты target к буферу: "/" сбрасывает в корень,
// ".." снимает последний компонент, "." и пустые игнорируются.
func (r Resolver) walk(target string) (string, error) {
	var parts []string
	if !strings.HasPrefix(target, "/") {
		base, err := r.cwd()
		if err != nil {
			return "", err
		}
		parts = splitPath(base)
	}
	for _, comp := range splitPath(target) {
		switch comp {
		case "..":
			if len(parts) == 0 {
				return "", ErrAlreadyAtRoot
			}
			parts = parts[:len(parts)-1]
		default:
			parts = append(parts, comp)
		}
	}
	return "/" + strings.Join(parts, "/"), nil
}

func splitPath(p string) []string {
	raw := strings.Split(p, "/")
	parts := make([]string, 0, len(raw))
	for _, comp := range raw {
		if comp == "" || comp == "." {
			continue
		}
		parts = append(parts, comp)
	}
	return parts
}
