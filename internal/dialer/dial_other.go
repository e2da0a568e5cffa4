//go:build !darwin && !linux
// +build !darwin,!linux

package dialer

import (
	"context"
	"net"
	"strconv"
)

func dialTCP(ctx context.Context, ip net.IP, port int) (net.Conn, error) {
	return zeroDialer.DialContext(ctx, "tcp", net.JoinHostPort(ip.String(), strconv.Itoa(port)))
}
