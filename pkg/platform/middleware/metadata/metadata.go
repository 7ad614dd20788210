package metadata

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"petclinic/pkg/requestcontext"
)

const unknownClient = "unknown"

// ClientMetadata puts the client address and User-Agent on the request
// context, where the access log reads them.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest returns the first parseable address among the leftmost
// X-Forwarded-For entry, X-Real-IP and the socket peer.
func ClientIPFromRequest(r *http.Request) string {
	forwarded, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	candidates := []string{forwarded, r.Header.Get("X-Real-IP"), peerHost(r.RemoteAddr)}
	for _, c := range candidates {
		if addr, err := netip.ParseAddr(strings.TrimSpace(c)); err == nil {
			return addr.Unmap().String()
		}
	}
	return unknownClient
}

func peerHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
