package dialer

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/frankli0324/uhttp/internal/http"
)

// handshake upgrades conn to TLS. A handshake failing because the socket is
// not connected yet is retried on a fresh [tls.Conn] until it succeeds, fails
// otherwise or ctx is done.
func (d *CoreDialer) handshake(ctx context.Context, conn net.Conn, serverName string) (net.Conn, error) {
	config := d.TLSConfig.Clone()
	if config == nil {
		config = &tls.Config{}
	}
	if config.ServerName == "" {
		config.ServerName = serverName
	}
	interval := d.TLSRetryInterval
	if interval <= 0 {
		interval = DefaultTLSRetryInterval
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, &http.TLSError{Host: serverName, Err: err}
		}
		c := tls.Client(conn, config)
		err := c.HandshakeContext(ctx)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, syscall.ENOTCONN) {
			return nil, &http.TLSError{Host: serverName, Err: err}
		}
	}
}
