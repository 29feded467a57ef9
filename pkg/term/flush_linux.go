//go:build linux

package term

import "golang.org/x/sys/unix"

func flushInput(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIFLUSH)
}
