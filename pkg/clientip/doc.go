// Package clientip resolves the client address of an HTTP request.
//
// Proxy headers are client controlled, so none are consulted unless the
// caller names them. With no trusted headers the address comes from
// RemoteAddr. A header holding a list (X-Forwarded-For) yields its first
// valid entry.
//
//	r.Use(clientip.New("CF-Connecting-IP", "X-Forwarded-For"))
//	...
//	ip := clientip.FromContext(r.Context())
package clientip
