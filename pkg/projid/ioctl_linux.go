//go:build linux

package projid

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl request values for the 28-byte fsxattr structure, from linux/fs.h:
// FS_IOC_FSGETXATTR = _IOR('X', 31, struct fsxattr)
// FS_IOC_FSSETXATTR = _IOW('X', 32, struct fsxattr)
const (
	fsGetXAttr = 0x801c581f
	fsSetXAttr = 0x401c5820
)

type ioctlPort struct{}

func (ioctlPort) Get(path string) (FSXAttr, error) {
	dir, err := os.OpenFile(path, os.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return FSXAttr{}, err
	}
	defer dir.Close()

	var attr FSXAttr
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, dir.Fd(), fsGetXAttr, uintptr(unsafe.Pointer(&attr))); errno != 0 {
		return FSXAttr{}, os.NewSyscallError("FS_IOC_FSGETXATTR", errno)
	}
	return attr, nil
}

func (ioctlPort) Set(path string, attr FSXAttr) error {
	dir, err := os.OpenFile(path, os.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return err
	}
	defer dir.Close()

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, dir.Fd(), fsSetXAttr, uintptr(unsafe.Pointer(&attr))); errno != 0 {
		return os.NewSyscallError("FS_IOC_FSSETXATTR", errno)
	}
	return nil
}
