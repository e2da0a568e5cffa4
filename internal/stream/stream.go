// Package stream wraps a connection into the single bidirectional byte
// stream the transport writes requests to and reads responses from.
package stream

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const DefaultBufferSize = 4096

var aLongTimeAgo = time.Unix(1, 0)

type Stream struct {
	rwc    io.ReadWriteCloser
	br     *bufio.Reader
	bw     *bufio.Writer
	closed atomic.Bool
	log    *zap.Logger
}

// New wraps rwc. A size <= 0 uses [DefaultBufferSize]; a nil logger
// disables logging.
func New(rwc io.ReadWriteCloser, size int, log *zap.Logger) *Stream {
	if size <= 0 {
		size = DefaultBufferSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Stream{
		rwc: rwc,
		br:  bufio.NewReaderSize(rwc, size),
		bw:  bufio.NewWriterSize(rwc, size),
		log: log,
	}
}

// Raw returns the wrapped connection.
func (s *Stream) Raw() io.ReadWriteCloser {
	return s.rwc
}

// Write buffers p, it is sent on the next [Stream.Drain].
func (s *Stream) Write(p []byte) (int, error) {
	return s.bw.Write(p)
}

func (s *Stream) WriteString(str string) (int, error) {
	return s.bw.WriteString(str)
}

// Drain blocks until everything written so far is handed to the connection.
func (s *Stream) Drain() error {
	return s.check("write", s.bw.Flush())
}

// ReadLine reads up to and including the next '\n'. A final line without
// terminator is returned as is; io.EOF is only returned when nothing could
// be read.
func (s *Stream) ReadLine() ([]byte, error) {
	line, err := s.br.ReadBytes('\n')
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	return line, s.check("read", err)
}

// Read performs at most one read on the connection when the buffer is empty.
func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.br.Read(p)
	return n, s.check("read", err)
}

func (s *Stream) ReadByte() (byte, error) {
	b, err := s.br.ReadByte()
	return b, s.check("read", err)
}

// Buffered returns how many bytes were read from the connection but not
// consumed yet.
func (s *Stream) Buffered() int {
	return s.br.Buffered()
}

// ReadFull blocks until n bytes are read. If the connection ends first the
// bytes read so far are returned along with io.ErrUnexpectedEOF, or io.EOF
// if there were none.
func (s *Stream) ReadFull(n int) ([]byte, error) {
	// n may come from the peer, grow with what arrives instead of
	// allocating n up front
	buf, err := io.ReadAll(io.LimitReader(s.br, int64(n)))
	if err == nil && len(buf) < n {
		err = io.ErrUnexpectedEOF
		if len(buf) == 0 {
			err = io.EOF
		}
	}
	return buf, s.check("read", err)
}

// Watch makes pending and future blocking calls on the stream fail once ctx
// is done, provided the connection supports deadlines. Calling the returned
// function detaches ctx.
func (s *Stream) Watch(ctx context.Context) (stop func() bool) {
	d, ok := s.rwc.(interface{ SetDeadline(time.Time) error })
	if !ok {
		return func() bool { return true }
	}
	return context.AfterFunc(ctx, func() {
		d.SetDeadline(aLongTimeAgo)
	})
}

// Close closes the connection once, later calls are no-ops.
func (s *Stream) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.rwc.Close()
}

func (s *Stream) Closed() bool {
	return s.closed.Load()
}

func (s *Stream) check(op string, err error) error {
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.log.Debug("stream: error on "+op, zap.Error(err))
	}
	return err
}
