// package transport contains implementations to requirements on *message syntaxes*
// defined by http related RFCs.
//
// as of 2022.06, RFCs that were to define HTTP/1.1 (RFC753x) are obsoleted by:
//
//  HTTP Semantics (RFC9110)
//  HTTP Caching (RFC9111) and
//  HTTP/1.1 (RFC9112)
//
// only a small subset of HTTP/1.1 is implemented here: a request is always
// followed by "Connection: close", and a response body is either delimited
// by Content-Length or chunked. bodies delimited by the connection closing
// are not supported and read as empty.
//
// net/http components are reused on the "semantics" part ([net/http.Header]).

package transport
