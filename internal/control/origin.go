// Package control serves the websocket control protocol and the coordinate picker.
package control

import (
	"net/http"
	"net/url"
	"strings"
)

// SameOrigin reports whether r comes from the page served by this host.
// Requests without an Origin header (scripts, CLI tools) are accepted unless the
// browser marks them cross-site.
func SameOrigin(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("Sec-Fetch-Site"), "cross-site") {
		return false
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
