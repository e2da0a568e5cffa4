// Package uhttp is a minimal, streaming HTTP/1.1 client.
//
// Every request opens a fresh connection which the server closes after the
// response. The response body is read lazily from that connection and is
// either delimited by Content-Length or chunked. Redirects (301, 302, 303)
// are followed up to a per request limit, once the limit is exceeded the
// redirect response itself is returned.
package uhttp

import (
	"github.com/frankli0324/uhttp/internal"
	"github.com/frankli0324/uhttp/internal/http"
)

type Client = internal.Client
type Header = http.Header
type Request = http.Request
type PreparedRequest = http.PreparedRequest
type Response = http.Response
type ResponseHead = http.ResponseHead
type Body = http.Body

type Handler = internal.Handler
type Middleware = internal.Middleware

type Option = http.Option

var (
	WithData          = http.WithData
	WithJSON          = http.WithJSON
	WithProducer      = http.WithProducer
	WithHeader        = http.WithHeader
	WithHeaders       = http.WithHeaders
	WithRedirectLimit = http.WithRedirectLimit
	WithUserAgent     = http.WithUserAgent
)

const DefaultUserAgent = http.DefaultUserAgent

type ConnectError = http.ConnectError
type TLSError = http.TLSError

var (
	ErrUnsupportedScheme   = http.ErrUnsupportedScheme
	ErrInvalidURL          = http.ErrInvalidURL
	ErrInvalidPort         = http.ErrInvalidPort
	ErrAmbiguousBody       = http.ErrAmbiguousBody
	ErrNotImplemented      = http.ErrNotImplemented
	ErrInvalidHeader       = http.ErrInvalidHeader
	ErrMalformedStatusLine = http.ErrMalformedStatusLine
	ErrMalformedHeader     = http.ErrMalformedHeader
	ErrMalformedChunk      = http.ErrMalformedChunk
	ErrUnsupported         = http.ErrUnsupported
	ErrEmptyChunk          = http.ErrEmptyChunk
	ErrProxyRefused        = http.ErrProxyRefused
)
