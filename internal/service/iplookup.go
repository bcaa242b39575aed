package service

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// UnknownAddress is the sentinel stored when the sender address cannot be
// resolved. Resolution failure never blocks a submission.
const UnknownAddress = "Unknown"

// IPLookup resolves the sender's public network address.
type IPLookup interface {
	Resolve(ctx context.Context, remoteAddr string) string
}

type ipLookup struct {
	client    *http.Client
	lookupURL string
}

// NewIPLookup builds a lookup that trusts the transport-level address when
// present and falls back to an external "what is my IP" endpoint otherwise.
// The client must carry a bounded timeout.
func NewIPLookup(client *http.Client) IPLookup {
	return &ipLookup{
		client:    client,
		lookupURL: "https://api.ipify.org",
	}
}

// Resolve returns the best-effort sender address, or UnknownAddress.
func (l *ipLookup) Resolve(ctx context.Context, remoteAddr string) string {
	if addr := strings.TrimSpace(remoteAddr); addr != "" && !isLoopback(addr) {
		return addr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.lookupURL, nil)
	if err != nil {
		return UnknownAddress
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return UnknownAddress
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UnknownAddress
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil || len(body) == 0 {
		return UnknownAddress
	}
	return strings.TrimSpace(string(body))
}

func isLoopback(addr string) bool {
	return addr == "127.0.0.1" || addr == "::1" || addr == "localhost"
}
