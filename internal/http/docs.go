// package http contains the request and response type, which are meant
// to be exported through type aliases by the top level package.
//
// the package also contains the error values shared by the dialer and
// the transport, and some type aliases from standard library to avoid
// annoying imports
package http

import (
	"net/http"
)

type Header = http.Header
