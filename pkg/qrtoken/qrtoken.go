// Package qrtoken implements the signed handover/return token format used by
// the handoff service. A token is the base64 of a JSON claims payload joined
// with a hex HMAC-SHA256 tag over that payload:
//
//	base64(JSON(claims)) "." hex(HMAC-SHA256(secret, base64Payload))
//
// The codec is pure: no I/O and no clock reads. Expiry is checked by Verify
// against a caller-supplied instant, and the stateful liveness check (is this
// still the authoritative token for its booking and action) belongs to the
// redemption service, not here.
package qrtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Action identifies which half of the rental lifecycle a token authorizes.
type Action string

const (
	ActionHandover Action = "handover"
	ActionReturn   Action = "return"
)

// Valid reports whether a is one of the two known actions.
func (a Action) Valid() bool {
	return a == ActionHandover || a == ActionReturn
}

var (
	// ErrMalformedToken reports a token that does not split into a payload
	// and a signature part.
	ErrMalformedToken = errors.New("qrtoken: malformed token")

	// ErrBadSignature reports an HMAC mismatch. Any bit flip in either part
	// of the token lands here or in ErrInvalidPayload, never in silence.
	ErrBadSignature = errors.New("qrtoken: invalid token signature")

	// ErrInvalidPayload reports a payload that is not decodable JSON or is
	// missing a required claim field.
	ErrInvalidPayload = errors.New("qrtoken: invalid token payload")

	// ErrExpired reports a structurally valid token past its expiry.
	ErrExpired = errors.New("qrtoken: token expired")
)

// Claims are the facts embedded in a signed token. They are fixed at issuance
// and travel verbatim (modulo encoding) inside the token. ExpiresAt is Unix
// milliseconds on the wire, matching the platform's other token consumers.
type Claims struct {
	BookingID    string `json:"bookingId"`
	UserID       string `json:"userId"`
	AssetID      string `json:"assetId"`
	Action       Action `json:"action"`
	RedemptionID string `json:"uuid"`
	ExpiresAtMS  int64  `json:"expiresAt"`
}

// ExpiresAt returns the expiry as a time.Time in UTC.
func (c Claims) ExpiresAt() time.Time {
	return time.UnixMilli(c.ExpiresAtMS).UTC()
}

// Codec signs and validates tokens with a server-held secret.
type Codec struct {
	secret []byte
}

// New returns a Codec for the given secret. An empty secret is a
// configuration error and is rejected so the process fails at startup rather
// than minting unverifiable tokens at request time.
func New(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("qrtoken: empty signing secret")
	}
	return &Codec{secret: secret}, nil
}

// Encode serializes and signs claims. Deterministic for identical claims and
// secret; two claims differing only in RedemptionID always produce different
// tokens.
func (c *Codec) Encode(claims Claims) (string, error) {
	if err := requireFields(claims); err != nil {
		return "", err
	}

	raw, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("qrtoken: marshal claims: %w", err)
	}

	payload := base64.StdEncoding.EncodeToString(raw)
	return payload + "." + c.sign(payload), nil
}

// Decode splits, authenticates and parses a token. The signature is checked
// before the payload is touched, so a tampered payload is reported as
// ErrBadSignature rather than a parse failure.
func (c *Codec) Decode(token string) (Claims, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return Claims{}, ErrMalformedToken
	}

	if !hmac.Equal([]byte(c.sign(payload)), []byte(sig)) {
		return Claims{}, ErrBadSignature
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Claims{}, ErrInvalidPayload
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Claims{}, ErrInvalidPayload
	}
	if err := requireFields(claims); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// Verify decodes a token and checks its expiry against now. It performs no
// state check: a verified token may still have been superseded by a reissue,
// which only the redemption transaction can decide.
func (c *Codec) Verify(token string, now time.Time) (Claims, error) {
	claims, err := c.Decode(token)
	if err != nil {
		return Claims{}, err
	}

	if claims.ExpiresAtMS != 0 && now.UnixMilli() > claims.ExpiresAtMS {
		return Claims{}, ErrExpired
	}

	return claims, nil
}

func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func requireFields(claims Claims) error {
	if claims.BookingID == "" || claims.UserID == "" || claims.AssetID == "" ||
		claims.RedemptionID == "" {
		return ErrInvalidPayload
	}
	if !claims.Action.Valid() {
		return ErrInvalidPayload
	}
	return nil
}
