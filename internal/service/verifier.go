package service

import (
	"context"
	"net/http"
	"regexp"
	"strings"
)

const (
	probeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	reasonInvalidFormat   = "Invalid format"
	reasonProfileNotFound = "Profile not found"
)

var handleRegex = regexp.MustCompile(`^[A-Za-z0-9._]{1,30}$`)

// VerifyResult is the outcome of a handle existence check.
type VerifyResult struct {
	Exists   bool   `json:"exists"`
	Username string `json:"username,omitempty"`
	Reason   string `json:"reason,omitempty"`
	// Fallback is set when the probe failed and the result was assumed.
	Fallback bool `json:"fallback,omitempty"`
}

// VerifierService checks that a claimed Instagram handle belongs to a real
// profile. Verification is a soft nudge, not a security boundary: when the
// probe cannot complete, the service fails open and accepts the handle, so a
// flaky or blocking third-party surface never stops a legitimate sender.
type VerifierService interface {
	Verify(ctx context.Context, handle string) VerifyResult
}

type verifierService struct {
	client     *http.Client
	profileURL string
}

// NewVerifierService builds a verifier probing through the given client.
// The client must carry a bounded timeout.
func NewVerifierService(client *http.Client) VerifierService {
	return &verifierService{
		client:     client,
		profileURL: "https://www.instagram.com/",
	}
}

// Verify strips and validates the handle, then issues a single best-effort
// HEAD probe against the profile page. Malformed handles are rejected
// without any network call.
func (s *verifierService) Verify(ctx context.Context, handle string) VerifyResult {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(handle), "@"))

	if !handleRegex.MatchString(clean) {
		return VerifyResult{Exists: false, Reason: reasonInvalidFormat}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.profileURL+clean+"/", nil)
	if err != nil {
		return VerifyResult{Exists: true, Username: clean, Fallback: true}
	}
	// Instagram serves automation-unfriendly responses to bare clients;
	// present a browser-like signature.
	req.Header.Set("User-Agent", probeUserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		// fail open: unreachable, rate-limited or blocked
		return VerifyResult{Exists: true, Username: clean, Fallback: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return VerifyResult{Exists: true, Username: clean}
	}
	return VerifyResult{Exists: false, Reason: reasonProfileNotFound}
}
