package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"   // secure random generation for opaque tokens
	"crypto/sha256" // SHA-256 hashing for stored token digests
	"encoding/hex"  // hex encoding of digests and random bytes
	"time"          // expiry calculations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken is a signed HS256 JWT together with its expiry. Access
// tokens are short-lived and travel either in the Authorization header
// or in the HTTP-only session cookie.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// OpaqueToken is a long-lived random token (refresh or password
// reset). The Raw value goes to the client once; only its SHA-256
// hash is persisted.
type OpaqueToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user with the
// standard sub/exp/iat claims.
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken returns a cryptographically secure random token
// valid for the given number of days.
func NewRefreshToken(ttlDays int) (OpaqueToken, error) {
	raw, err := randomHex(48) // 48 bytes -> 96 hex chars
	if err != nil {
		return OpaqueToken{}, err
	}
	return OpaqueToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

// NewResetToken returns a random password reset token valid for the
// given number of minutes.
func NewResetToken(ttlMin int) (OpaqueToken, error) {
	raw, err := randomHex(32)
	if err != nil {
		return OpaqueToken{}, err
	}
	return OpaqueToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute),
	}, nil
}

// HashTokenRaw returns the SHA-256 hash of a raw opaque token as a hex
// string. Storing only the hash keeps stolen database rows from being
// replayed as sessions.
func HashTokenRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
