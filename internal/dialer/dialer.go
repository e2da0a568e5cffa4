package dialer

import (
	"crypto/tls"
	"time"

	"github.com/frankli0324/uhttp/internal/http"
)

// Dialers handle pretty much everything related to the actual connection,
// such as setting resolvers and TLS configurations.
type Dialer = http.Dialer

type CoreDialer struct {
	ResolveConfig *ResolveConfig

	TLSConfig *tls.Config // the config to use, ServerName defaults to the request host

	// TLSRetryInterval paces handshake attempts while the socket reports
	// it is not connected yet. Zero means [DefaultTLSRetryInterval].
	TLSRetryInterval time.Duration

	ProxyConfig *ProxyConfig // nil connects to the request host directly
}

const DefaultTLSRetryInterval = 20 * time.Millisecond

func (d *CoreDialer) Clone() *CoreDialer {
	return &CoreDialer{
		ResolveConfig:    d.ResolveConfig.Clone(),
		TLSConfig:        d.TLSConfig.Clone(),
		TLSRetryInterval: d.TLSRetryInterval,
		ProxyConfig:      d.ProxyConfig.Clone(),
	}
}

func (d *CoreDialer) Unwrap() Dialer {
	return nil
}
