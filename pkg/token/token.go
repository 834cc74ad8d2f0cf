// Package token inspects bearer tokens locally, without verifying them.
// Verification is the backend's job; the client only peeks at the expiry
// claim so that an obviously dead token can be dropped without a network
// round trip.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether raw is a JWT whose exp claim is in the past.
// Opaque (non-JWT) tokens and JWTs without an exp claim are reported as
// not expired; the backend has the final say on those.
func Expired(raw string) bool {
	return expiredAt(raw, time.Now())
}

func expiredAt(raw string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return now.After(exp.Time)
}
