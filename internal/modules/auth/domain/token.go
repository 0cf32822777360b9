package domain

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// Expired reports whether a bearer token's exp claim lies in the past. The
// token is read as a three-part dot-delimited structure whose middle segment
// is a base64url-encoded JSON payload with a Unix-seconds exp field. A
// malformed token counts as expired.
//
// The signature is never checked here. This is a UX shortcut for early local
// logout; the backend re-validates authorization on every call.
func Expired(token string, now time.Time) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return true
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		return true
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return true
	}
	if claims.Exp == 0 {
		return true
	}
	return claims.Exp < now.Unix()
}

func decodeSegment(segment string) ([]byte, error) {
	if decoded, err := base64.RawURLEncoding.DecodeString(segment); err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(segment)
}
