package files

import (
	"context"

	"mshell/internal/core"
)

// Module предоставляет команды работы с файловой системой.
type Module struct{}

func (m *Module) Name() string { return "files" }

func (m *Module) Init(ctx context.Context) error { //nolint:revive // инициализация пока тривиальна
	return nil
}

// Commands возвращает команды модуля.
func (m *Module) Commands() []core.CommandSpec {
	return []core.CommandSpec{
		{Name: "cd", Handler: cd, Description: "Switch current directory, usage: cd <directory>"},
		{Name: "pwd", Handler: pwd, Description: "Print the current working directory"},
		{Name: "ls", Handler: ls, Description: "List directory contents, usage: ls [-a] [-l] [directory]"},
		{Name: "cat", Handler: cat, Description: "Concatenate file(s) to standard output, usage: cat <path> [<path> ...]"},
		{Name: "cp", Handler: cp, Description: "Copy source to dest, usage: cp <source file> <destination file/dir>"},
		{Name: "cmp", Handler: cmp, Description: "Compare two files byte by byte, usage: cmp <path1> <path2>"},
		{Name: "mkdir", Handler: mkdir, Description: "Create directory, usage: mkdir [-p] [-v] [-m MODE] <path> [<path> ...]"},
		{Name: "rmdir", Handler: rmdir, Description: "Remove empty directories, usage: rmdir <path> [<path> ...]"},
		{Name: "touch", Handler: touch, Description: "Update the access and modification times of each file to the current time, usage: touch <file> [<file> ...]"},
		{Name: "truncate", Handler: truncate, Description: "Shrink or extend the size of a file, usage: truncate <file> <size>"},
	}
}
