//go:build !linux

package mount

import "errors"

// SystemMounter недоступен вне Linux.
type SystemMounter struct{}

func (SystemMounter) Mount(target, fstype string) error { return errors.ErrUnsupported }

func (SystemMounter) Unmount(target string) error { return errors.ErrUnsupported }
