package http

import (
	"context"
	"io"
	"net/http"
)

type Dialer interface {
	Dial(ctx context.Context, r *PreparedRequest) (io.ReadWriteCloser, error)
	Unwrap() Dialer
}

type Request struct {
	Method string
	URL    string
	Header http.Header

	Data     []byte
	JSON     interface{}
	Producer func(w io.Writer) error

	UserAgent     string
	RedirectLimit int // 0 disables following redirects
}

// ResponseHead is the parsed status line and header block of a response.
// Header holds the raw header lines in the order they were received,
// including the trailing CRLF.
type ResponseHead struct {
	StatusCode int
	Header     []string

	Chunked       bool
	ContentLength int64 // -1 if no Content-Length header was received
	Location      string
}

// IsRedirect reports whether the status code is one the client follows.
func (h *ResponseHead) IsRedirect() bool {
	return h.StatusCode >= 301 && h.StatusCode <= 303
}

type Response struct {
	ResponseHead
	Body Body
}

// Body is the lazily read response body. Closing the Body closes the
// underlying connection.
type Body interface {
	io.ReadCloser

	// ReadN reads at most n bytes, or everything the body is willing to
	// hand out at once if n is negative. It returns io.EOF once exhausted.
	ReadN(n int) ([]byte, error)
	ReadLine() ([]byte, error)
	ReadInto(p []byte) (int, error)

	// ContentLength returns the number of bytes left to read, or -1 if
	// the length is not known in advance.
	ContentLength() int64
}
