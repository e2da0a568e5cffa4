package transport

import (
	"io"

	"github.com/frankli0324/uhttp/internal/stream"
)

// FixedLength is a body delimited by Content-Length. Reads never go past the
// declared length: the server closes the connection after the response and
// reading further could get the connection reset.
type FixedLength struct {
	s      *stream.Stream
	remain int64
}

func NewFixedLength(s *stream.Stream, n int64) *FixedLength {
	if n < 0 {
		n = 0
	}
	return &FixedLength{s: s, remain: n}
}

func (b *FixedLength) ContentLength() int64 { return b.remain }

func (b *FixedLength) clamp(n int) int {
	if n < 0 || int64(n) > b.remain {
		return int(b.remain)
	}
	return n
}

func (b *FixedLength) consume(n int, err error) error {
	b.remain -= int64(n)
	if err == io.EOF && b.remain > 0 {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// ReadN reads exactly min(n, remaining) bytes, a negative n reads the whole
// remaining body. Memory grows with the bytes received, not with the
// declared length.
func (b *FixedLength) ReadN(n int) ([]byte, error) {
	if b.remain == 0 {
		return nil, io.EOF
	}
	want := b.remain
	if n >= 0 && int64(n) < want {
		want = int64(n)
	}
	data, err := io.ReadAll(io.LimitReader(b.s, want))
	if err == nil && int64(len(data)) < want {
		err = io.EOF
	}
	return data, b.consume(len(data), err)
}

func (b *FixedLength) Read(p []byte) (int, error) {
	if b.remain == 0 {
		return 0, io.EOF
	}
	n, err := b.s.Read(p[:b.clamp(len(p))])
	return n, b.consume(n, err)
}

// ReadInto fills p, or as much of it as the body has left.
func (b *FixedLength) ReadInto(p []byte) (int, error) {
	if b.remain == 0 {
		return 0, io.EOF
	}
	n, err := io.ReadFull(b.s, p[:b.clamp(len(p))])
	return n, b.consume(n, err)
}

// ReadLine reads up to and including the next '\n', stopping early at the
// end of the body.
func (b *FixedLength) ReadLine() ([]byte, error) {
	if b.remain == 0 {
		return nil, io.EOF
	}
	var line []byte
	for b.remain > 0 {
		c, err := b.s.ReadByte()
		if err != nil {
			return line, b.consume(0, err)
		}
		b.remain--
		line = append(line, c)
		if c == '\n' {
			break
		}
	}
	return line, nil
}

func (b *FixedLength) Close() error {
	return b.s.Close()
}
