package internal

import (
	"context"

	"go.uber.org/zap"

	"github.com/frankli0324/uhttp/internal/config"
	"github.com/frankli0324/uhttp/internal/dialer"
	"github.com/frankli0324/uhttp/internal/http"
	"github.com/frankli0324/uhttp/internal/stream"
	"github.com/frankli0324/uhttp/internal/transport"
)

type PreparedRequest = http.PreparedRequest

// Handler performs a single hop of a request: one connection, one request,
// one response head.
type Handler = func(ctx context.Context, req *PreparedRequest) (*http.Response, error)
type Middleware func(next Handler) Handler

// Client is safe for concurrent use once configured. The zero value is
// usable and dials with [dialer.CoreDialer] using [config.Default].
type Client struct {
	Config *config.Config
	Logger *zap.Logger

	middlewares []Middleware
	dialer      dialer.Dialer
}

// Use appends mw to the end of the chain. The first "Use"d mw executes first
func (c *Client) Use(mws ...Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

// UseDialer replaces the dialer with what wrap returns for the current one.
func (c *Client) UseDialer(wrap func(dialer.Dialer) dialer.Dialer) {
	c.dialer = wrap(c.getDialer())
}

// UseCoreDialer configures a copy of the default core dialer.
func (c *Client) UseCoreDialer(configure func(cd *dialer.CoreDialer) dialer.Dialer) {
	c.dialer = configure(c.defaultDialer())
}

func (c *Client) config() *config.Config {
	if c.Config != nil {
		return c.Config
	}
	return config.Default()
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func (c *Client) defaultDialer() *dialer.CoreDialer {
	cfg := c.config().Dial
	d := &dialer.CoreDialer{TLSRetryInterval: cfg.TLSRetryInterval}
	if cfg.Proxy != "" {
		d.ProxyConfig = &dialer.ProxyConfig{URL: cfg.Proxy}
	}
	return d
}

func (c *Client) getDialer() dialer.Dialer {
	if c.dialer != nil {
		return c.dialer
	}
	return c.defaultDialer()
}

// NewRequest builds a request carrying the client's defaults, then applies
// opts on top of them.
func (c *Client) NewRequest(method, url string, opts ...http.Option) *http.Request {
	cfg := c.config()
	req := &http.Request{
		Method: method, URL: url,
		UserAgent:     cfg.Client.UserAgent,
		RedirectLimit: cfg.Client.RedirectLimit,
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

func (c *Client) Do(ctx context.Context, method, url string, opts ...http.Option) (*http.Response, error) {
	return c.CtxDo(ctx, c.NewRequest(method, url, opts...))
}

func (c *Client) Get(ctx context.Context, url string, opts ...http.Option) (*http.Response, error) {
	return c.Do(ctx, "GET", url, opts...)
}

func (c *Client) Head(ctx context.Context, url string, opts ...http.Option) (*http.Response, error) {
	return c.Do(ctx, "HEAD", url, opts...)
}

func (c *Client) Post(ctx context.Context, url string, opts ...http.Option) (*http.Response, error) {
	return c.Do(ctx, "POST", url, opts...)
}

func (c *Client) Put(ctx context.Context, url string, opts ...http.Option) (*http.Response, error) {
	return c.Do(ctx, "PUT", url, opts...)
}

func (c *Client) Patch(ctx context.Context, url string, opts ...http.Option) (*http.Response, error) {
	return c.Do(ctx, "PATCH", url, opts...)
}

func (c *Client) Delete(ctx context.Context, url string, opts ...http.Option) (*http.Response, error) {
	return c.Do(ctx, "DELETE", url, opts...)
}

// CtxDo issues req and follows 301, 302 and 303 redirects to their Location
// verbatim, at most req.RedirectLimit times. When the limit is exceeded the
// last redirect response is returned as is, with its body still readable.
// The caller must close the returned response's Body.
func (c *Client) CtxDo(ctx context.Context, req *http.Request) (*http.Response, error) {
	log := c.logger()
	next := c.roundTrip
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		next = c.middlewares[i](next)
	}

	cur := *req
	redirects := 0
	for {
		pr, err := cur.Prepare()
		if err != nil {
			return nil, err
		}
		resp, err := next(ctx, pr)
		if err != nil {
			return nil, err
		}
		if !resp.IsRedirect() || resp.Location == "" {
			return resp, nil
		}
		redirects++
		if redirects > req.RedirectLimit {
			log.Debug("redirect limit exceeded, returning redirect response",
				zap.Int("status", resp.StatusCode), zap.Int("limit", req.RedirectLimit))
			return resp, nil
		}
		resp.Body.Close()
		log.Debug("following redirect", zap.String("from", cur.URL), zap.String("to", resp.Location),
			zap.Int("status", resp.StatusCode))
		cur.URL = resp.Location
	}
}

func (c *Client) roundTrip(ctx context.Context, pr *PreparedRequest) (*http.Response, error) {
	log := c.logger()
	rwc, err := c.getDialer().Dial(ctx, pr)
	if err != nil {
		return nil, err
	}
	log.Debug("connected", zap.String("host", pr.Host), zap.Int("port", pr.Port), zap.Bool("tls", pr.IsTLS()))

	s := stream.New(rwc, c.config().Dial.ReadBufferSize, log)
	stop := s.Watch(ctx)
	resp, err := c.exchange(s, pr)
	if !stop() && err == nil {
		err = ctx.Err() // ctx fired, the deadline left on the connection is unusable
	}
	if err != nil {
		s.Close()
		return nil, err
	}
	log.Debug("response head", zap.String("method", pr.Method), zap.String("path", pr.RequestURI()),
		zap.Int("status", resp.StatusCode), zap.Bool("chunked", resp.Chunked), zap.Int64("content_length", resp.ContentLength))
	return resp, nil
}

func (c *Client) exchange(s *stream.Stream, pr *PreparedRequest) (*http.Response, error) {
	var h1 transport.Transport = transport.HTTP1{ChunkReadSize: c.config().Dial.ChunkReadSize}
	if err := h1.Write(s, pr); err != nil {
		return nil, err
	}
	resp := &http.Response{}
	if err := h1.ReadHead(s, &resp.ResponseHead); err != nil {
		return nil, err
	}
	resp.Body = h1.NewBody(s, &resp.ResponseHead)
	return resp, nil
}
