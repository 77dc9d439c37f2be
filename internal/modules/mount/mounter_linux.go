package mount

import "golang.org/x/sys/unix"

// SystemMounter вызывает mount(2)/umount2(2).
type SystemMounter struct{}

// Mount монтирует fstype в target; источником служит имя типа ФС.
func (SystemMounter) Mount(target, fstype string) error {
	return unix.Mount(fstype, target, fstype, 0, "")
}

func (SystemMounter) Unmount(target string) error {
	return unix.Unmount(target, 0)
}
