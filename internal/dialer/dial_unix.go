//go:build darwin || linux
// +build darwin linux

package dialer

import (
	"context"
	"net"
	"os"

	"golang.org/x/sys/unix"

	"github.com/frankli0324/uhttp/utils/nettools"
)

// dialTCP connects a non-blocking socket. The connect is allowed to be in
// progress when it returns, completion is awaited by polling for
// writability and its outcome read from SO_ERROR.
func dialTCP(ctx context.Context, ip net.IP, port int) (net.Conn, error) {
	var (
		family int
		sa     unix.Sockaddr
	)
	if ip4 := ip.To4(); ip4 != nil {
		sa4 := &unix.SockaddrInet4{Port: port}
		copy(sa4.Addr[:], ip4)
		family, sa = unix.AF_INET, sa4
	} else {
		sa6 := &unix.SockaddrInet6{Port: port}
		copy(sa6.Addr[:], ip.To16())
		family, sa = unix.AF_INET6, sa6
	}

	fd, err := unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	unix.CloseOnExec(fd)
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, os.NewSyscallError("setnonblock", err)
	}
	unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)

	if err := unix.Connect(fd, sa); err != nil && err != unix.EINPROGRESS {
		unix.Close(fd)
		return nil, os.NewSyscallError("connect", err)
	}
	if err := nettools.WaitWritable(ctx, fd); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if errno, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR); err != nil {
		unix.Close(fd)
		return nil, os.NewSyscallError("getsockopt", err)
	} else if errno != 0 {
		unix.Close(fd)
		return nil, os.NewSyscallError("connect", unix.Errno(errno))
	}

	// net.FileConn dups the descriptor and registers it with the runtime poller
	f := os.NewFile(uintptr(fd), "tcp:"+net.JoinHostPort(ip.String(), ""))
	defer f.Close()
	return net.FileConn(f)
}
