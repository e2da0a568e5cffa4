package dialer

import (
	"context"
	"io"
	"net"
	"strconv"

	"golang.org/x/net/idna"

	"github.com/frankli0324/uhttp/internal/http"
)

var zeroDialer net.Dialer

// Dial connects to the request host, directly or tunneled through the
// configured proxy, and performs the TLS handshake for https requests. The
// returned connection is never shared.
func (d *CoreDialer) Dial(ctx context.Context, r *http.PreparedRequest) (io.ReadWriteCloser, error) {
	host := r.Host
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	addr := net.JoinHostPort(host, strconv.Itoa(r.Port))

	var conn net.Conn
	var err error
	if d.ProxyConfig != nil {
		conn, err = d.dialProxy(ctx, addr)
	} else {
		conn, err = d.dialDirect(ctx, host, r.Port)
	}
	if err != nil {
		return nil, &http.ConnectError{Addr: addr, Err: err}
	}
	if r.IsTLS() {
		tc, err := d.handshake(ctx, conn, host)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return tc, nil
	}
	return conn, nil
}

func (d *CoreDialer) dialDirect(ctx context.Context, host string, port int) (net.Conn, error) {
	ip, err := d.resolve(ctx, host)
	if err != nil {
		return nil, err
	}
	return dialTCP(ctx, ip, port)
}
