package dialer

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankli0324/uhttp/internal/http"
)

func prepare(t *testing.T, url string) *http.PreparedRequest {
	t.Helper()
	pr, err := (&http.Request{Method: "GET", URL: url}).Prepare()
	require.NoError(t, err)
	return pr
}

func echoListener(t *testing.T) net.Listener {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				io.Copy(conn, conn)
			}()
		}
	}()
	return l
}

func TestDialPlain(t *testing.T) {
	l := echoListener(t)
	d := &CoreDialer{}
	conn, err := d.Dial(context.Background(), prepare(t, "http://"+l.Addr().String()+"/"))
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("ping\n"))
	require.NoError(t, err)
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "ping\n", line)
}

func TestDialStaticHosts(t *testing.T) {
	l := echoListener(t)
	_, port, _ := net.SplitHostPort(l.Addr().String())
	d := &CoreDialer{ResolveConfig: &ResolveConfig{
		StaticHosts: map[string]string{"echo.test": "127.0.0.1"},
	}}
	conn, err := d.Dial(context.Background(), prepare(t, "http://echo.test:"+port+"/"))
	require.NoError(t, err)
	conn.Close()
}

func TestDialStaticHostNotIP(t *testing.T) {
	d := &CoreDialer{ResolveConfig: &ResolveConfig{
		StaticHosts: map[string]string{"echo.test": "other.test"},
	}}
	_, err := d.Dial(context.Background(), prepare(t, "http://echo.test/"))
	var connErr *http.ConnectError
	require.True(t, errors.As(err, &connErr), "got %v", err)
	assert.Equal(t, "echo.test:80", connErr.Addr)
}

func TestDialRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	_, err = (&CoreDialer{}).Dial(context.Background(), prepare(t, "http://"+addr+"/"))
	var connErr *http.ConnectError
	require.True(t, errors.As(err, &connErr), "got %v", err)
	assert.Equal(t, addr, connErr.Addr)
}

func TestDialCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := echoListener(t)
	_, err := (&CoreDialer{}).Dial(ctx, prepare(t, "http://"+l.Addr().String()+"/"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandshakeAgainstPlainServer(t *testing.T) {
	server := httptest.NewServer(nil)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := (&CoreDialer{}).Dial(ctx, prepare(t, "https://"+server.Listener.Addr().String()+"/"))
	var tlsErr *http.TLSError
	require.True(t, errors.As(err, &tlsErr), "got %v", err)
	assert.Equal(t, "127.0.0.1", tlsErr.Host)
}

func TestClone(t *testing.T) {
	d := &CoreDialer{
		ResolveConfig:    &ResolveConfig{Network: "ip4"},
		TLSRetryInterval: time.Second,
	}
	c := d.Clone()
	c.ResolveConfig.Network = "ip6"
	assert.Equal(t, "ip4", d.ResolveConfig.Network)
	assert.Equal(t, time.Second, c.TLSRetryInterval)
	assert.Nil(t, c.Unwrap())
}
