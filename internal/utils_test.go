package internal_test

import (
	"bufio"
	"context"
	"io"
	"net"
	nethttp "net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/frankli0324/uhttp/internal"
	"github.com/frankli0324/uhttp/internal/http"
)

type trackedConn struct {
	net.Conn
	closed *atomic.Int32
}

func (c trackedConn) Close() error {
	c.closed.Add(1)
	return c.Conn.Close()
}

// TestDialer answers every dialed connection from a table of raw responses
// keyed by absolute url, after parsing the request with net/http.
type TestDialer struct {
	Responses map[string]string

	mu       sync.Mutex
	Requests []*nethttp.Request
	Bodies   []string
	Dials    atomic.Int32
	Closed   atomic.Int32
}

// Dial implements http.Dialer.
func (d *TestDialer) Dial(ctx context.Context, r *http.PreparedRequest) (io.ReadWriteCloser, error) {
	d.Dials.Add(1)
	client, server := net.Pipe()
	url := r.Scheme + "://" + r.HeaderHost + r.RequestURI()
	go func() {
		defer server.Close()
		req, err := nethttp.ReadRequest(bufio.NewReader(server))
		if err != nil {
			return
		}
		body, _ := io.ReadAll(req.Body)
		d.mu.Lock()
		d.Requests = append(d.Requests, req)
		d.Bodies = append(d.Bodies, string(body))
		resp := d.Responses[url]
		d.mu.Unlock()
		io.WriteString(server, resp)
	}()
	return trackedConn{client, &d.Closed}, nil
}

// Unwrap implements http.Dialer.
func (d *TestDialer) Unwrap() http.Dialer {
	return nil
}

func (d *TestDialer) Paths() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	paths := make([]string, len(d.Requests))
	for i, r := range d.Requests {
		paths[i] = r.Host + r.URL.RequestURI()
	}
	return paths
}

func newTestClient(t *testing.T, responses map[string]string) (*internal.Client, *TestDialer) {
	t.Helper()
	d := &TestDialer{Responses: responses}
	c := &internal.Client{}
	c.UseDialer(func(http.Dialer) http.Dialer { return d })
	return c, d
}
