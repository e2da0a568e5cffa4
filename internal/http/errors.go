package http

import (
	"errors"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported scheme, only http: and https: are allowed")
	ErrInvalidURL        = errors.New("invalid url, expecting scheme://host[:port]/path")
	ErrInvalidPort       = errors.New("invalid port in url")

	// ErrAmbiguousBody is returned when both a raw body and a JSON body are
	// supplied to the same request.
	ErrAmbiguousBody = errors.New("request has both raw and json body")
	// ErrNotImplemented is returned for streaming request bodies, which are
	// accepted by the API but not supported by the transport.
	ErrNotImplemented = errors.New("streaming request body is not implemented")
	ErrInvalidHeader  = errors.New("invalid request header")

	ErrMalformedStatusLine = errors.New("malformed HTTP status line")
	ErrMalformedHeader     = errors.New("malformed HTTP response header")
	ErrMalformedChunk      = errors.New("malformed chunked encoding")
	ErrUnsupported         = errors.New("operation not supported on chunked body")
	ErrEmptyChunk          = errors.New("chunk must not be empty")

	ErrProxyRefused = errors.New("proxy refused to open a tunnel")
)

// ConnectError reports a socket level failure while establishing a connection.
// Errors from address resolution are reported the same way.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return "connect " + e.Addr + ": " + e.Err.Error()
}

func (e *ConnectError) Unwrap() error { return e.Err }

// TLSError reports a failed TLS handshake. The retryable "not yet
// connected" condition never surfaces as a TLSError.
type TLSError struct {
	Host string
	Err  error
}

func (e *TLSError) Error() string {
	return "tls handshake with " + e.Host + ": " + e.Err.Error()
}

func (e *TLSError) Unwrap() error { return e.Err }
