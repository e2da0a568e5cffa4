package uhttp

import (
	"github.com/frankli0324/uhttp/dialer"
)

type Dialer = dialer.Dialer
type CoreDialer = dialer.CoreDialer

type ResolveConfig = dialer.ResolveConfig
type ProxyConfig = dialer.ProxyConfig
