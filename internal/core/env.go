package core

import (
	"io"
	"os"
	"path/filepath"
)

// WorkDir абстрагирует текущий каталог процесса.
type WorkDir interface {
	Getwd() (string, error)
	Chdir(dir string) error
}

// HomeFunc возвращает домашний каталог, если он известен.
type HomeFunc func() (string, bool)

// OSWorkDir работает с текущим каталогом процесса.
type OSWorkDir struct{}

func (OSWorkDir) Getwd() (string, error) { return os.Getwd() }

func (OSWorkDir) Chdir(dir string) error { return os.Chdir(dir) }

// EnvHome берет домашний каталог из $HOME.
func EnvHome() (string, bool) {
	home := os.Getenv("HOME")
	return home, home != ""
}

// StaticHome возвращает HomeFunc с фиксированным каталогом.
func StaticHome(dir string) HomeFunc {
	return func() (string, bool) { return dir, dir != "" }
}

// Env описывает окружение, которое видят обработчики команд.
type Env struct {
	Out      io.Writer
	WorkDir  WorkDir
	Home     HomeFunc
	Commands Introspector
}

// NewEnv создает окружение поверх процесса ОС.
func NewEnv(out io.Writer) *Env {
	return &Env{Out: out, WorkDir: OSWorkDir{}, Home: EnvHome}
}

// Resolver строит резолвер путей из провайдеров окружения.
func (e *Env) Resolver() Resolver {
	home := e.Home
	if home == nil {
		home = EnvHome
	}
	return Resolver{Getwd: e.WorkDir.Getwd, Home: home}
}

// Abs переводит путь аргумента в абсолютный относительно текущего каталога.
func (e *Env) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	cwd, err := e.WorkDir.Getwd()
	if err != nil {
		return "", NewSyscallError("unable to get current directory for", path, err)
	}
	return filepath.Join(cwd, path), nil
}
