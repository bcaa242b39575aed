// Package identity derives the pseudonymous voter key used to deduplicate
// votes. Both variants are soft identities: a determined user can clear
// their signals or spoof new ones. The key is an anti-duplicate heuristic
// for casual double voting, not a security control.
package identity

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Signals is the small bundle of client characteristics folded into an
// anonymous voter key.
type Signals struct {
	UserAgent      string `json:"user_agent"`
	Language       string `json:"language"`
	ScreenGeometry string `json:"screen_geometry"`
	TimezoneOffset int    `json:"timezone_offset"`
}

// Fingerprint folds the signals into a short base-36 key. The same bundle
// always yields the same key, so repeat votes from one browser collapse onto
// one ledger row.
func Fingerprint(s Signals) string {
	h := fnv.New32a()
	h.Write([]byte(s.UserAgent))
	h.Write([]byte{0})
	h.Write([]byte(s.Language))
	h.Write([]byte{0})
	h.Write([]byte(s.ScreenGeometry))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(s.TimezoneOffset)))
	return "fp_" + strconv.FormatUint(uint64(h.Sum32()), 36)
}

// FromCollegeUID builds a voter key from an authenticated user's
// institutional id. Stronger than a fingerprint: it survives across devices
// and cannot be reset by clearing local storage.
func FromCollegeUID(uid string) string {
	return "uid_" + strings.ToUpper(strings.TrimSpace(uid))
}
