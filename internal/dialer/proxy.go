package dialer

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/frankli0324/uhttp/internal/http"
	"github.com/frankli0324/uhttp/internal/stream"
	"github.com/frankli0324/uhttp/internal/transport"
)

type ProxyConfig struct {
	URL           string         // http://[user:pass@]host[:port]
	ResolveConfig *ResolveConfig // resolves the proxy host, if nil *[CoreDialer.ResolveConfig] will be used
}

func (c *ProxyConfig) Clone() *ProxyConfig {
	if c == nil {
		return nil
	}
	return &ProxyConfig{
		URL:           c.URL,
		ResolveConfig: c.ResolveConfig.Clone(),
	}
}

var h1Transport = transport.HTTP1{}

// dialProxy opens a tunnel to target (host:port) with the CONNECT method.
// The target host is resolved by the proxy.
func (d *CoreDialer) dialProxy(ctx context.Context, target string) (net.Conn, error) {
	proxy, err := url.Parse(d.ProxyConfig.URL)
	if err != nil || proxy.Hostname() == "" {
		return nil, fmt.Errorf("%w: proxy %q", http.ErrInvalidURL, d.ProxyConfig.URL)
	}
	if proxy.Scheme != "http" { // TODO: socks
		return nil, fmt.Errorf("%w: proxy scheme %q", http.ErrUnsupportedScheme, proxy.Scheme)
	}
	port := 80
	if p := proxy.Port(); p != "" {
		if port, err = strconv.Atoi(p); err != nil || port > 65535 {
			return nil, fmt.Errorf("%w: proxy port %q", http.ErrInvalidPort, p)
		}
	}

	resolver := d
	if d.ProxyConfig.ResolveConfig != nil {
		resolver = &CoreDialer{ResolveConfig: d.ProxyConfig.ResolveConfig}
	}
	conn, err := resolver.dialDirect(ctx, proxy.Hostname(), port)
	if err != nil {
		return nil, err
	}

	s := stream.New(conn, 0, nil)
	stop := s.Watch(ctx)
	err = connect(s, target, proxy.User)
	if !stop() && err == nil {
		err = ctx.Err()
	}
	if err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func connect(s *stream.Stream, target string, user *url.Userinfo) error {
	s.WriteString("CONNECT " + target + " HTTP/1.1\r\n")
	s.WriteString("Host: " + target + "\r\n")
	if user != nil {
		pass, _ := user.Password()
		auth := base64.StdEncoding.EncodeToString([]byte(user.Username() + ":" + pass))
		s.WriteString("Proxy-Authorization: Basic " + auth + "\r\n")
	}
	s.WriteString("\r\n")
	if err := s.Drain(); err != nil {
		return err
	}

	var head http.ResponseHead
	if err := h1Transport.ReadHead(s, &head); err != nil {
		return err
	}
	if head.StatusCode != 200 {
		return fmt.Errorf("%w: status %d", http.ErrProxyRefused, head.StatusCode)
	}
	if s.Buffered() != 0 {
		// both http and tls clients speak first, these bytes aren't the target's
		return fmt.Errorf("%w: %d unexpected bytes after response", http.ErrProxyRefused, s.Buffered())
	}
	return nil
}
