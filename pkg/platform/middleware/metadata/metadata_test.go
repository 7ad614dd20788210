package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"petclinic/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "first forwarded address", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, remote: "172.16.0.1:80", want: "10.0.0.1"},
		{name: "real ip header", headers: map[string]string{"X-Real-IP": " 10.0.0.9 "}, want: "10.0.0.9"},
		{name: "garbage header falls through to the peer", headers: map[string]string{"X-Forwarded-For": "not-an-ip"}, remote: "192.168.1.4:5123", want: "192.168.1.4"},
		{name: "remote addr strips port", remote: "192.168.1.4:5123", want: "192.168.1.4"},
		{name: "ipv6 remote addr", remote: "[::1]:8080", want: "::1"},
		{name: "ipv4 mapped ipv6 is unmapped", remote: "[::ffff:10.1.2.3]:8080", want: "10.1.2.3"},
		{name: "remote addr without port", remote: "10.0.0.5", want: "10.0.0.5"},
		{name: "nothing known", remote: "", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}

func TestClientMetadata(t *testing.T) {
	var gotIP, gotUA string
	handler := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/owners/find", nil)
	req.RemoteAddr = "127.0.0.1:4000"
	req.Header.Set("User-Agent", "curl/8.4.0")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "127.0.0.1", gotIP)
	assert.Equal(t, "curl/8.4.0", gotUA)
}
