package transport

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/frankli0324/uhttp/internal/http"
	"github.com/frankli0324/uhttp/internal/stream"
	"github.com/frankli0324/uhttp/internal/transport/chunked"
)

var (
	prefixTransferEncoding = []byte("Transfer-Encoding:")
	prefixLocation         = []byte("Location:")
	prefixContentLength    = []byte("Content-Length:")
)

type HTTP1 struct {
	// ChunkReadSize is how much a chunked body hands out per ReadN(-1) at
	// most. Zero means [chunked.DefaultReadSize].
	ChunkReadSize int
}

// Write writes a complete request, draining the stream after the request
// line and headers, and again after the body.
func (t HTTP1) Write(s *stream.Stream, r *http.PreparedRequest) error {
	if err := t.writeHeader(s, r); err != nil {
		return err
	}
	if len(r.Body) != 0 {
		if _, err := s.Write(r.Body); err != nil {
			return err
		}
		return s.Drain()
	}
	return nil
}

// writeHeader writes the request line and header part of an http 1.1 request
// e.g.:
//
//	GET / HTTP/1.1\r\n
//	Host: www.google.com\r\n
//	User-Agent: Mozilla/5.0 ...\r\n
//	Accept: */*\r\n
//	Connection: close\r\n
//	X-Xx-Yy: cccccc\r\n
//	\r\n
func (t HTTP1) writeHeader(s *stream.Stream, r *http.PreparedRequest) error {
	s.WriteString(r.Method)
	s.WriteString(" ")
	s.WriteString(r.RequestURI())
	s.WriteString(" HTTP/1.1\r\n")

	s.WriteString("Host: " + r.HeaderHost + "\r\n")
	s.WriteString("User-Agent: " + r.UserAgent + "\r\n")
	s.WriteString("Accept: */*\r\nConnection: close\r\n")
	if err := s.Drain(); err != nil {
		return err
	}

	keys := make([]string, 0, len(r.Header))
	for k := range r.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range r.Header[k] {
			s.WriteString(k)
			s.WriteString(": ")
			s.WriteString(v)
			s.WriteString("\r\n")
		}
	}
	if r.ContentType != "" {
		s.WriteString("Content-Type: " + r.ContentType + "\r\n")
	}
	if len(r.Body) != 0 {
		s.WriteString("Content-Length: " + strconv.Itoa(len(r.Body)) + "\r\n")
	}
	if _, err := s.WriteString("\r\n"); err != nil {
		return err
	}
	return s.Drain()
}

// ReadHead reads the status line and the header block. Only the headers
// needed to frame the body and to follow redirects are interpreted, the rest
// are kept verbatim in head.Header.
//
// The header block ends at an empty line. The end of the stream is accepted
// as the end of the header block as well.
func (t HTTP1) ReadHead(s *stream.Stream, head *http.ResponseHead) error {
	line, err := s.ReadLine()
	if err != nil && err != io.EOF {
		return err
	}
	fields := bytes.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("%w: %q", http.ErrMalformedStatusLine, line)
	}
	head.StatusCode, err = strconv.Atoi(string(fields[1]))
	if err != nil {
		return fmt.Errorf("%w: %q", http.ErrMalformedStatusLine, line)
	}

	head.ContentLength = -1
	for {
		line, err := s.ReadLine()
		if err != nil && err != io.EOF {
			return err
		}
		if len(line) == 0 || string(line) == "\r\n" {
			break
		}
		head.Header = append(head.Header, string(line))

		switch {
		case bytes.HasPrefix(line, prefixTransferEncoding):
			if bytes.Contains(line, []byte("chunked")) {
				head.Chunked = true
			}
		case bytes.HasPrefix(line, prefixLocation):
			head.Location = headerValue(line)
		case bytes.HasPrefix(line, prefixContentLength):
			v := headerValue(line)
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				return fmt.Errorf("%w: Content-Length %q", http.ErrMalformedHeader, v)
			}
			head.ContentLength = n
		}
	}
	return nil
}

// headerValue returns what follows the first run of whitespace in a header
// line, with trailing whitespace removed.
func headerValue(line []byte) string {
	line = bytes.TrimRight(line, " \t\r\n")
	i := bytes.IndexAny(line, " \t")
	if i < 0 {
		return ""
	}
	return strings.TrimLeft(string(line[i:]), " \t")
}

// NewBody picks the body decoder matching the parsed head. Bodies that are
// neither chunked nor have a Content-Length are treated as empty.
func (t HTTP1) NewBody(s *stream.Stream, head *http.ResponseHead) http.Body {
	if head.Chunked {
		c := chunked.NewReader(s)
		if t.ChunkReadSize > 0 {
			c.ReadSize = t.ChunkReadSize
		}
		return c
	}
	return NewFixedLength(s, head.ContentLength)
}
