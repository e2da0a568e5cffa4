package transport_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankli0324/uhttp/internal/http"
	"github.com/frankli0324/uhttp/internal/stream"
	"github.com/frankli0324/uhttp/internal/transport"
	"github.com/frankli0324/uhttp/internal/transport/chunked"
)

type conn struct {
	io.Reader
	io.Writer
	closed bool
}

func (c *conn) Close() error { c.closed = true; return nil }

func newStream(raw string) (*stream.Stream, *conn) {
	c := &conn{Reader: strings.NewReader(raw), Writer: io.Discard}
	return stream.New(c, 0, nil), c
}

const mandatory = "User-Agent: ua\r\nAccept: */*\r\nConnection: close\r\n"

type tCase struct {
	data string
	req  *http.Request
}

var reqShouldBe = map[string]tCase{
	"BasicRequest": {
		req:  &http.Request{Method: "GET", URL: "http://www.example.com"},
		data: "GET / HTTP/1.1\r\nHost: www.example.com\r\n" + mandatory + "\r\n",
	},
	"QueryNonStandard": {
		req:  &http.Request{Method: "GET", URL: "http://www.example.com/test?1=33=1"},
		data: "GET /test?1=33=1 HTTP/1.1\r\nHost: www.example.com\r\n" + mandatory + "\r\n",
	},
	"HeaderNotCanonicalized": {
		req: &http.Request{
			Method: "GET", URL: "http://www.example.com/",
			Header: http.Header{"x-123-vv": {"1"}, "X-A": {"2", "3"}},
		},
		data: "GET / HTTP/1.1\r\nHost: www.example.com\r\n" + mandatory + "X-A: 2\r\nX-A: 3\r\nx-123-vv: 1\r\n\r\n",
	},
	"ExplicitPortInHost": {
		req:  &http.Request{Method: "HEAD", URL: "http://www.example.com:8080/a"},
		data: "HEAD /a HTTP/1.1\r\nHost: www.example.com:8080\r\n" + mandatory + "\r\n",
	},
	"RawBody": {
		req:  &http.Request{Method: "POST", URL: "http://www.example.com/", Data: []byte("hello")},
		data: "POST / HTTP/1.1\r\nHost: www.example.com\r\n" + mandatory + "Content-Length: 5\r\n\r\nhello",
	},
	"EmptyRawBody": {
		req:  &http.Request{Method: "POST", URL: "http://www.example.com/", Data: []byte{}},
		data: "POST / HTTP/1.1\r\nHost: www.example.com\r\n" + mandatory + "\r\n",
	},
	"JSONBody": {
		req:  &http.Request{Method: "PUT", URL: "http://www.example.com/", JSON: []int{1, 2}},
		data: "PUT / HTTP/1.1\r\nHost: www.example.com\r\n" + mandatory + "Content-Type: application/json\r\nContent-Length: 5\r\n\r\n[1,2]",
	},
}

func TestRequestSerialize(t *testing.T) {
	for name, cas := range reqShouldBe {
		tCase := cas
		t.Run(name, func(t *testing.T) {
			tCase.req.UserAgent = "ua"
			pr, err := tCase.req.Prepare()
			require.NoError(t, err)

			var wire bytes.Buffer
			s := stream.New(&conn{Reader: strings.NewReader(""), Writer: &wire}, 0, nil)
			require.NoError(t, transport.HTTP1{}.Write(s, pr))
			assert.Equal(t, tCase.data, wire.String())
		})
	}
}

func TestReadHead(t *testing.T) {
	s, _ := newStream("HTTP/1.1 302 Found\r\n" +
		"Server: x\r\n" +
		"Location: http://example.test/new  \r\n" +
		"Content-Length: 3\r\n" +
		"Content-Length: 7\r\n" +
		"\r\n" +
		"moved!!")
	var head http.ResponseHead
	require.NoError(t, transport.HTTP1{}.ReadHead(s, &head))

	assert.Equal(t, 302, head.StatusCode)
	assert.Equal(t, "http://example.test/new", head.Location)
	assert.Equal(t, int64(7), head.ContentLength, "last Content-Length wins")
	assert.False(t, head.Chunked)
	assert.Equal(t, []string{
		"Server: x\r\n",
		"Location: http://example.test/new  \r\n",
		"Content-Length: 3\r\n",
		"Content-Length: 7\r\n",
	}, head.Header)
}

func TestReadHeadChunked(t *testing.T) {
	s, _ := newStream("HTTP/1.1 200 OK\r\nTransfer-Encoding: gzip, chunked\r\n\r\n")
	var head http.ResponseHead
	require.NoError(t, transport.HTTP1{}.ReadHead(s, &head))
	assert.True(t, head.Chunked)
	assert.Equal(t, int64(-1), head.ContentLength)
	assert.IsType(t, &chunked.Reader{}, transport.HTTP1{}.NewBody(s, &head))
}

func TestReadHeadCaseSensitive(t *testing.T) {
	s, _ := newStream("HTTP/1.1 200 OK\r\ncontent-length: 5\r\ntransfer-encoding: chunked\r\n\r\nhello")
	var head http.ResponseHead
	require.NoError(t, transport.HTTP1{}.ReadHead(s, &head))
	assert.False(t, head.Chunked)
	assert.Equal(t, int64(-1), head.ContentLength)
	assert.Len(t, head.Header, 2)

	body := transport.HTTP1{}.NewBody(s, &head)
	b, err := body.ReadN(-1)
	assert.Equal(t, io.EOF, err, "bodies without a length are empty")
	assert.Empty(t, b)
}

func TestReadHeadEOFEndsHeaders(t *testing.T) {
	s, _ := newStream("HTTP/1.0 204 No Content\r\nServer: x\r\n")
	var head http.ResponseHead
	require.NoError(t, transport.HTTP1{}.ReadHead(s, &head))
	assert.Equal(t, 204, head.StatusCode)
	assert.Equal(t, []string{"Server: x\r\n"}, head.Header)
}

func TestReadHeadMalformed(t *testing.T) {
	cases := map[string]struct {
		raw string
		err error
	}{
		"Empty":            {"", http.ErrMalformedStatusLine},
		"NoCode":           {"HTTP/1.1\r\n\r\n", http.ErrMalformedStatusLine},
		"NonNumericCode":   {"HTTP/1.1 OK\r\n\r\n", http.ErrMalformedStatusLine},
		"BadContentLength": {"HTTP/1.1 200 OK\r\nContent-Length: five\r\n\r\n", http.ErrMalformedHeader},
	}
	for name, cas := range cases {
		cas := cas
		t.Run(name, func(t *testing.T) {
			s, _ := newStream(cas.raw)
			var head http.ResponseHead
			assert.ErrorIs(t, transport.HTTP1{}.ReadHead(s, &head), cas.err)
		})
	}
}

func TestNewBodyChunkReadSize(t *testing.T) {
	s, _ := newStream("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n")
	var head http.ResponseHead
	h1 := transport.HTTP1{ChunkReadSize: 3}
	require.NoError(t, h1.ReadHead(s, &head))

	body := h1.NewBody(s, &head)
	b, err := body.ReadN(-1)
	require.NoError(t, err)
	assert.Equal(t, "hel", string(b))
}
