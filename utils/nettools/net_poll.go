//go:build darwin || linux
// +build darwin linux

package nettools

import (
	"context"

	"golang.org/x/sys/unix"
)

// WaitWritable blocks until fd becomes writable, reports an error or hangs
// up, or until ctx is done. It is used to wait for a non-blocking connect to
// complete, the outcome of the connect itself must be read with SO_ERROR.
func WaitWritable(ctx context.Context, fd int) error {
	s := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := unix.Poll(s, int(pollSlice.Milliseconds()))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		if n > 0 && s[0].Revents&(unix.POLLOUT|unix.POLLERR|unix.POLLHUP) != 0 {
			return nil
		}
	}
}
