package chunked

import (
	"io"
	"strconv"

	"github.com/frankli0324/uhttp/internal/http"
)

// Sink is the part of a stream the chunked encoder writes to.
type Sink interface {
	io.Writer
	Drain() error
}

// NewWriter returns a writer framing everything written to it as chunks.
// Each Write produces exactly one chunk.
func NewWriter(w Sink) *Writer {
	return &Writer{w}
}

type Writer struct {
	Wire Sink
}

func (cw *Writer) Write(data []byte) (n int, err error) {
	// a 0-length chunk would terminate the body
	if len(data) == 0 {
		return 0, http.ErrEmptyChunk
	}
	if cw.Wire == nil {
		return 0, io.ErrClosedPipe
	}

	if _, err = io.WriteString(cw.Wire, strconv.FormatInt(int64(len(data)), 16)+"\r\n"); err != nil {
		return 0, err
	}
	if n, err = cw.Wire.Write(data); err != nil {
		return
	}
	if n != len(data) {
		err = io.ErrShortWrite
		return
	}
	if _, err = io.WriteString(cw.Wire, "\r\n"); err != nil {
		return
	}
	err = cw.Wire.Drain()
	return
}

// Close writes the last chunk. The writer can not be used afterwards.
func (cw *Writer) Close() error {
	if cw.Wire == nil {
		return io.ErrClosedPipe
	}
	if _, err := io.WriteString(cw.Wire, "0\r\n\r\n"); err != nil {
		return err
	}
	err := cw.Wire.Drain()
	cw.Wire = nil
	return err
}
