package uhttp

import (
	"context"

	"github.com/frankli0324/uhttp/internal/config"
	"github.com/frankli0324/uhttp/internal/logging"
)

// DefaultClient is used by the package level helpers. Its configuration is
// read from UHTTP_* environment variables when the package is loaded.
var DefaultClient = newDefaultClient()

func newDefaultClient() *Client {
	cfg := config.LoadOrDefault()
	return &Client{Config: cfg, Logger: logging.NewOrNop(cfg.Logging)}
}

func Do(ctx context.Context, method, url string, opts ...Option) (*Response, error) {
	return DefaultClient.Do(ctx, method, url, opts...)
}

func Get(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return DefaultClient.Get(ctx, url, opts...)
}

func Head(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return DefaultClient.Head(ctx, url, opts...)
}

func Post(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return DefaultClient.Post(ctx, url, opts...)
}

func Put(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return DefaultClient.Put(ctx, url, opts...)
}

func Patch(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return DefaultClient.Patch(ctx, url, opts...)
}

func Delete(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return DefaultClient.Delete(ctx, url, opts...)
}
