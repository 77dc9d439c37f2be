package core

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrUsage: неверное число или вид аргументов.
	ErrUsage = errors.New("usage error")
	// ErrNotFound: путь или домашний каталог не найден.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyAtRoot: попытка подняться выше корня.
	ErrAlreadyAtRoot = errors.New("already at root directory")
	// ErrSystemCall: ошибка системного вызова.
	ErrSystemCall = errors.New("system call failed")
	// ErrUnknownCommand: имени нет в реестре.
	ErrUnknownCommand = errors.New("unknown command")

	ErrNoHomeDirectory = fmt.Errorf("unable to determine home directory: %w", ErrNotFound)
)

// UsageError сообщает ожидаемый синтаксис команды.
type UsageError struct {
	Usage string
}

// Usage создает UsageError.
func Usage(usage string) error {
	return &UsageError{Usage: usage}
}

func (e *UsageError) Error() string { return "Usage: " + e.Usage }

func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// NewSyscallError создает SyscallError; путь из *fs.PathError не дублируется.
func NewSyscallError(op, path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &SyscallError{Op: op, Path: path, Err: err}
}

// SyscallError оборачивает ошибку ОС вместе с путем, к которому она относится.
type SyscallError struct {
	Op   string
	Path string
	Err  error
}

func (e *SyscallError) Error() string {
	return fmt.Sprintf("%s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *SyscallError) Is(target error) bool { return target == ErrSystemCall }

func (e *SyscallError) Unwrap() error { return e.Err }
