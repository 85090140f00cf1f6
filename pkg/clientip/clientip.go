package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the normalized client IP. Headers are checked in
// order before RemoteAddr. It returns "" when nothing parses.
func FromRequest(r *http.Request, trustedHeaders ...string) string {
	for _, name := range trustedHeaders {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
