package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ybfstudio/booking-api/internal/ratelimit"
)

func TestClientKey_ForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/service-requests", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "203.0.113.7", ratelimit.ClientKey(r))
}

func TestClientKey_RemoteAddrFallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/service-requests", nil)
	r.RemoteAddr = "198.51.100.4:51234"

	assert.Equal(t, "198.51.100.4", ratelimit.ClientKey(r))
}

func TestClientKey_UnknownFallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/service-requests", nil)
	r.RemoteAddr = ""
	r.Header.Del("X-Forwarded-For")

	assert.Equal(t, "unknown", ratelimit.ClientKey(r))
}

func TestClientKey_EmptyForwardedEntryFallsThrough(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/service-requests", nil)
	r.Header.Set("X-Forwarded-For", " , 10.0.0.1")
	r.RemoteAddr = "198.51.100.4:51234"

	assert.Equal(t, "198.51.100.4", ratelimit.ClientKey(r))
}
