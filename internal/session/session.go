// Package session extracts the optional authenticated-caller identity from a
// request. Authentication itself happens upstream (the fronting auth proxy);
// this package only reads the identity the proxy forwards.
package session

import (
	"net/http"
	"strings"
)

// Provider supplies the authenticated user id for a request, if any.
// Bookings are valid without one — anonymous submissions carry a nil user id.
type Provider interface {
	UserID(r *http.Request) (string, bool)
}

// HeaderProvider reads the user id from a trusted request header set by the
// auth proxy. The zero value reads "X-User-ID".
type HeaderProvider struct {
	// Header names the header carrying the user id. Empty means "X-User-ID".
	Header string
}

func (p *HeaderProvider) UserID(r *http.Request) (string, bool) {
	h := p.Header
	if h == "" {
		h = "X-User-ID"
	}
	v := strings.TrimSpace(r.Header.Get(h))
	return v, v != ""
}
