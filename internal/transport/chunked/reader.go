package chunked

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/frankli0324/uhttp/internal/http"
)

// DefaultReadSize is the most [Reader.ReadN] returns when asked for no
// particular size.
const DefaultReadSize = 4096

// Source is the part of a stream the chunked decoder reads from.
type Source interface {
	io.ReadCloser
	ReadLine() ([]byte, error)
	ReadFull(n int) ([]byte, error)
}

// NewReader returns a body decoding the chunked transfer-coding from src.
// Closing the returned reader closes src.
func NewReader(src Source) *Reader {
	return &Reader{src: src, ReadSize: DefaultReadSize}
}

type Reader struct {
	ReadSize int // upper bound for ReadN(-1), <= 0 means the whole chunk

	src    Source
	remain int64 // bytes left in the current chunk
	done   bool  // last chunk seen
	err    error // first framing or read error, returned from then on
}

func (c *Reader) ContentLength() int64 { return -1 }

// readChunkHeader reads the next chunk size line, chunk extensions are
// dropped. When the last chunk is met its CRLF is consumed and io.EOF
// returned.
func (c *Reader) readChunkHeader() error {
	line, err := c.src.ReadLine()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if i := bytes.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = bytes.TrimSpace(line)
	size, err := strconv.ParseUint(string(line), 16, 63)
	if err != nil {
		return fmt.Errorf("%w: invalid chunk size %q", http.ErrMalformedChunk, line)
	}
	if size == 0 {
		c.done = true
		if err := c.expectCRLF(); err != nil {
			return err
		}
		return io.EOF
	}
	c.remain = int64(size)
	return nil
}

func (c *Reader) expectCRLF() error {
	sep, err := c.src.ReadFull(2)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}
	if len(sep) != 2 || sep[0] != '\r' || sep[1] != '\n' {
		return fmt.Errorf("%w: expected CRLF after chunk, got %q", http.ErrMalformedChunk, sep)
	}
	return nil
}

// begin makes sure a chunk with unread data is current.
func (c *Reader) begin() error {
	if c.err != nil {
		return c.err
	}
	if c.done {
		return io.EOF
	}
	if c.remain == 0 {
		return c.readChunkHeader()
	}
	return nil
}

// consume accounts for n bytes read from the current chunk.
func (c *Reader) consume(n int, err error) error {
	c.remain -= int64(n)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if c.remain == 0 {
		return c.expectCRLF()
	}
	return nil
}

// fail records err so the stream, now out of sync, is never parsed again.
func (c *Reader) fail(err error) error {
	if err != nil && err != io.EOF && c.err == nil {
		c.err = err
	}
	return err
}

// ReadN reads at most n bytes from the current chunk. A negative n reads
// up to ReadSize bytes. Chunk boundaries are never crossed.
func (c *Reader) ReadN(n int) ([]byte, error) {
	if err := c.begin(); err != nil {
		return nil, c.fail(err)
	}
	if n < 0 && c.ReadSize > 0 {
		n = c.ReadSize
	}
	if n < 0 || int64(n) > c.remain {
		n = int(min(c.remain, math.MaxInt))
	}
	data, err := c.src.ReadFull(n)
	return data, c.fail(c.consume(len(data), err))
}

// Read implements [io.Reader], it may return fewer bytes than the current
// chunk holds.
func (c *Reader) Read(p []byte) (int, error) {
	if err := c.begin(); err != nil {
		return 0, c.fail(err)
	}
	if int64(len(p)) > c.remain {
		p = p[:c.remain]
	}
	n, err := c.src.Read(p)
	return n, c.fail(c.consume(n, err))
}

func (c *Reader) ReadLine() ([]byte, error) {
	return nil, fmt.Errorf("%w: ReadLine", http.ErrUnsupported)
}

func (c *Reader) ReadInto(p []byte) (int, error) {
	return 0, fmt.Errorf("%w: ReadInto", http.ErrUnsupported)
}

func (c *Reader) Close() error {
	return c.src.Close()
}
