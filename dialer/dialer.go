package dialer

import (
	"github.com/frankli0324/uhttp/internal/dialer"
)

// Dialers are responsible for creating the underlying stream a request is
// written to and its response is read from: a TCP connection, upgraded to
// TLS for https urls.
//
// A Dialer MUST NOT hold connection states, every call to Dial returns a
// fresh connection that is owned by the request alone and closed with its
// response body. It SHOULD hold the connection related configs like
// [ResolveConfig] or *[crypto/tls.Config].
type Dialer = dialer.Dialer

// CoreDialer is the default implementation of the [Dialer] interface. It would
// be used by a zero value Client.
//
// On linux and darwin it connects a non-blocking socket and waits for the
// connect to complete, honouring the request context. TLS handshakes that
// fail because the socket is not connected yet are retried.
type CoreDialer = dialer.CoreDialer

// we need a dedicated resolver to customize the DNS server used for
// resolving hostname.
//
// the standard library didn't provide a intuitive way of
// setting DNS server addresses since it only follows the
// system configuration (e.g. /etc/resolv.conf), leaving us only
// one option of using [net.Resolver.Dial] hook with a Go Resolver.
//
// this part of code tries to take advantage of that
// only option as far as possible to provide a relativly
// intuitive configuration API.
type ResolveConfig = dialer.ResolveConfig

const DefaultTLSRetryInterval = dialer.DefaultTLSRetryInterval

// ProxyConfig tunnels connections through an http proxy with the CONNECT
// method. Set it on a [CoreDialer], or with UHTTP_PROXY for the default one.
type ProxyConfig = dialer.ProxyConfig
