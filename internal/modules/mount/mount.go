package mount

import (
	"context"
	"fmt"

	"mshell/internal/core"
)

// SupportedFSType задает единственный тип файловой системы, который монтирует mount.
const SupportedFSType = "tmpfs"

// Mounter выполняет системные вызовы монтирования.
type Mounter interface {
	Mount(target, fstype string) error
	Unmount(target string) error
}

// Module предоставляет команды mount и umount.
// Если Mounter не задан, используется системный.
type Module struct {
	Mounter Mounter
}

func (m *Module) Name() string { return "mount" }

// Init подставляет системный Mounter.
func (m *Module) Init(ctx context.Context) error {
	if m.Mounter == nil {
		m.Mounter = SystemMounter{}
	}
	return nil
}

// Commands возвращает команды модуля.
func (m *Module) Commands() []core.CommandSpec {
	return []core.CommandSpec{
		{Name: "mount", Handler: m.mount, Description: "Mount a filesystem, usage: mount <path> <fstype(only support tmpfs)>"},
		{Name: "umount", Handler: m.umount, Description: "Unmount filesystems, usage: umount <path>", Aliases: []string{"unmount"}},
	}
}

func (m *Module) mount(ctx context.Context, env *core.Env, args []string) error {
	if len(args) != 2 {
		return core.Usage("mount <path> <fstype>")
	}
	if args[1] != SupportedFSType {
		return fmt.Errorf("unsupported filesystem type '%s', only %s is supported", args[1], SupportedFSType)
	}
	target, err := env.Abs(args[0])
	if err != nil {
		return err
	}
	if err := m.Mounter.Mount(target, args[1]); err != nil {
		return core.NewSyscallError("mount failed for", target, err)
	}
	return nil
}

func (m *Module) umount(ctx context.Context, env *core.Env, args []string) error {
	if len(args) != 1 {
		return core.Usage("umount <path>")
	}
	target, err := env.Abs(args[0])
	if err != nil {
		return err
	}
	if err := m.Mounter.Unmount(target); err != nil {
		return core.NewSyscallError("unmount failed for", target, err)
	}
	return nil
}
