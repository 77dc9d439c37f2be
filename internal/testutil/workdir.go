// Package testutil содержит общие тестовые заглушки.
package testutil

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// WorkDir хранит текущий каталог в памяти: Chdir не меняет каталог процесса.
// Если Dirs задан, существование каталогов проверяется по нему, иначе
// по реальной файловой системе.
type WorkDir struct {
	Dir      string
	Dirs     map[string]bool
	GetwdErr error
	Chdirs   []string
}

// NewWorkDir создает WorkDir с текущим каталогом dir.
func NewWorkDir(dir string) *WorkDir {
	return &WorkDir{Dir: dir}
}

// NewVirtualWorkDir создает WorkDir с фиксированным набором каталогов.
func NewVirtualWorkDir(dir string, dirs ...string) *WorkDir {
	set := map[string]bool{"/": true, dir: true}
	for _, d := range dirs {
		set[d] = true
	}
	return &WorkDir{Dir: dir, Dirs: set}
}

func (w *WorkDir) Getwd() (string, error) {
	if w.GetwdErr != nil {
		return "", w.GetwdErr
	}
	return w.Dir, nil
}

func (w *WorkDir) Chdir(dir string) error {
	w.Chdirs = append(w.Chdirs, dir)
	if w.Dirs != nil {
		if !w.Dirs[dir] {
			return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
		}
		w.Dir = dir
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return &fs.PathError{Op: "chdir", Path: dir, Err: pe.Err}
		}
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}
	w.Dir = dir
	return nil
}
