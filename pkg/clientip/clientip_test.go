package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaultmarkets/onboarding/pkg/clientip"
)

func TestResolver_IP(t *testing.T) {
	t.Parallel()

	res := clientip.New("CF-Connecting-IP", "X-Forwarded-For")

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"remote addr", nil, "203.0.113.7:5555", "203.0.113.7"},
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "10.0.0.1"}, "10.0.0.2:1", "198.51.100.1"},
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1"}, "10.0.0.2:1", "198.51.100.2"},
		{"invalid header falls through", map[string]string{"CF-Connecting-IP": "nope"}, "203.0.113.9:80", "203.0.113.9"},
		{"untrusted header ignored", map[string]string{"X-Real-IP": "198.51.100.3"}, "203.0.113.9:80", "203.0.113.9"},
		{"ipv4 mapped", nil, "[::ffff:203.0.113.5]:80", "203.0.113.5"},
		{"ipv6", nil, "[2001:db8::1]:80", "2001:db8::1"},
		{"garbage", nil, "garbage", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, res.IP(req))
		})
	}
}

func TestResolver_Middleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.New().Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.0.2.10", got)
}
