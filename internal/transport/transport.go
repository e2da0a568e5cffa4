package transport

import (
	"github.com/frankli0324/uhttp/internal/http"
	"github.com/frankli0324/uhttp/internal/stream"
)

// Transport writes requests to and reads responses from a single stream.
type Transport interface {
	Write(s *stream.Stream, req *http.PreparedRequest) error
	ReadHead(s *stream.Stream, head *http.ResponseHead) error
	NewBody(s *stream.Stream, head *http.ResponseHead) http.Body
}

var _ Transport = HTTP1{}
