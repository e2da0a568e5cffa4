package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"golang.org/x/net/http/httpguts"
)

const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:66.0) Gecko/20100101 Firefox/66.0"

var defaultPorts = map[string]int{
	"http:": 80, "https:": 443,
}

type PreparedRequest struct {
	*Request

	Scheme string // "http" or "https"
	Host   string // hostname without port
	Port   int
	Path   string // request target without the leading slash, verbatim

	Header     http.Header
	HeaderHost string
	UserAgent  string

	ContentType string
	Body        []byte
}

func (r *PreparedRequest) IsTLS() bool {
	return r.Scheme == "https"
}

// RequestURI returns the request target written on the request line.
func (r *PreparedRequest) RequestURI() string {
	return "/" + r.Path
}

// SplitURL decomposes an absolute url of the form scheme://host[:port]/path.
// The path is returned verbatim without its leading slash; query strings and
// fragments are not treated specially.
func SplitURL(raw string) (scheme, host string, port int, path string, err error) {
	parts := strings.SplitN(raw, "/", 4)
	if len(parts) < 3 {
		return "", "", 0, "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if len(parts) == 4 {
		path = parts[3]
	}
	port, ok := defaultPorts[parts[0]]
	if !ok {
		return "", "", 0, "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, parts[0])
	}
	scheme, host = strings.TrimSuffix(parts[0], ":"), parts[2]
	if h, p, found := strings.Cut(host, ":"); found {
		port, err = strconv.Atoi(p)
		if err != nil || port < 0 || port > 65535 {
			return "", "", 0, "", fmt.Errorf("%w: %q", ErrInvalidPort, p)
		}
		host = h
	}
	if host == "" {
		return "", "", 0, "", fmt.Errorf("%w: empty host in %q", ErrInvalidURL, raw)
	}
	return scheme, host, port, path, nil
}

// Prepare validates the request and computes everything needed to write it
// on the wire. No I/O happens here, so every caller error surfaces before a
// connection is opened.
func (r *Request) Prepare() (*PreparedRequest, error) {
	scheme, host, port, path, err := SplitURL(r.URL)
	if err != nil {
		return nil, err
	}

	pr := &PreparedRequest{
		Request: r,
		Scheme:  scheme, Host: host, Port: port, Path: path,
		HeaderHost: strings.SplitN(r.URL, "/", 4)[2],
		UserAgent:  r.UserAgent,
	}
	if err := pr.updateBody(); err != nil {
		return nil, err
	}

	headers := r.Header.Clone()
	// user defined headers has higher priority
	for k, v := range headers {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, fmt.Errorf("%w: field name %q", ErrInvalidHeader, k)
		}
		for _, v := range v {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, fmt.Errorf("%w: value of %q", ErrInvalidHeader, k)
			}
		}
		switch strings.ToLower(k) {
		case "host":
			if len(v) != 0 {
				pr.HeaderHost = v[0]
			}
			delete(headers, k)
		case "user-agent":
			if len(v) != 0 {
				pr.UserAgent = v[0]
			}
			delete(headers, k)
		case "content-length":
			if len(v) != 0 && v[0] != strconv.Itoa(len(pr.Body)) {
				return nil, fmt.Errorf("%w: content-length %q conflicts with body size %d", ErrInvalidHeader, v[0], len(pr.Body))
			}
			delete(headers, k)
		}
	}
	if pr.UserAgent == "" {
		pr.UserAgent = DefaultUserAgent
	}
	pr.Header = headers
	return pr, nil
}

// should only be called once at [Prepare]
func (r *PreparedRequest) updateBody() error {
	if r.Producer != nil {
		return ErrNotImplemented
	}
	if r.JSON != nil {
		if r.Data != nil {
			return ErrAmbiguousBody
		}
		b, err := sonic.Marshal(r.JSON)
		if err != nil {
			return fmt.Errorf("encode json body: %w", err)
		}
		r.ContentType = "application/json"
		r.Body = b
		return nil
	}
	r.Body = r.Data
	return nil
}

// Option configures a [Request] built by the client helpers.
type Option func(*Request)

func WithData(b []byte) Option {
	return func(r *Request) { r.Data = b }
}

func WithJSON(v interface{}) Option {
	return func(r *Request) { r.JSON = v }
}

// WithProducer sets a streaming body producer. Requests carrying one fail
// with [ErrNotImplemented].
func WithProducer(f func(w io.Writer) error) Option {
	return func(r *Request) { r.Producer = f }
}

// WithHeader adds a single header, keeping the key as is.
func WithHeader(k, v string) Option {
	return func(r *Request) {
		if r.Header == nil {
			r.Header = http.Header{}
		}
		r.Header[k] = append(r.Header[k], v)
	}
}

func WithHeaders(h http.Header) Option {
	return func(r *Request) {
		if r.Header == nil {
			r.Header = http.Header{}
		}
		for k, v := range h {
			r.Header[k] = append(r.Header[k], v...)
		}
	}
}

func WithRedirectLimit(n int) Option {
	return func(r *Request) {
		if n < 0 {
			n = 0
		}
		r.RedirectLimit = n
	}
}

func WithUserAgent(ua string) Option {
	return func(r *Request) { r.UserAgent = ua }
}
