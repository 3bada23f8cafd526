package qrtoken

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-signing-secret")

func testClaims() Claims {
	return Claims{
		BookingID:    "bkg_01",
		UserID:       "usr_01",
		AssetID:      "ast_01",
		Action:       ActionHandover,
		RedemptionID: "3e2f8a34-9f7e-4f0a-9a41-2b8f9af0c111",
		ExpiresAtMS:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC).UnixMilli(),
	}
}

func TestNew_RejectsEmptySecret(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New([]byte{})
	require.Error(t, err)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	codec, err := New(testSecret)
	require.NoError(t, err)

	for _, action := range []Action{ActionHandover, ActionReturn} {
		claims := testClaims()
		claims.Action = action

		token, err := codec.Encode(claims)
		require.NoError(t, err)
		require.Contains(t, token, ".")

		got, err := codec.Decode(token)
		require.NoError(t, err)
		require.Equal(t, claims, got)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	codec, err := New(testSecret)
	require.NoError(t, err)

	a, err := codec.Encode(testClaims())
	require.NoError(t, err)
	b, err := codec.Encode(testClaims())
	require.NoError(t, err)
	require.Equal(t, a, b, "identical claims should encode identically")

	other := testClaims()
	other.RedemptionID = "b2a4c1de-0000-4f0a-9a41-2b8f9af0c222"
	c, err := codec.Encode(other)
	require.NoError(t, err)
	require.NotEqual(t, a, c, "differing redemption ids must differ on the wire")
}

func TestEncode_RejectsIncompleteClaims(t *testing.T) {
	codec, err := New(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Claims)
	}{
		{"missing booking id", func(c *Claims) { c.BookingID = "" }},
		{"missing user id", func(c *Claims) { c.UserID = "" }},
		{"missing asset id", func(c *Claims) { c.AssetID = "" }},
		{"missing redemption id", func(c *Claims) { c.RedemptionID = "" }},
		{"unknown action", func(c *Claims) { c.Action = "inspect" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := testClaims()
			tt.mutate(&claims)
			_, err := codec.Encode(claims)
			require.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	codec, err := New(testSecret)
	require.NoError(t, err)

	for _, token := range []string{"", "no-separator", ".sig-only", "payload-only."} {
		_, err := codec.Decode(token)
		require.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestDecode_TamperDetection(t *testing.T) {
	codec, err := New(testSecret)
	require.NoError(t, err)

	token, err := codec.Encode(testClaims())
	require.NoError(t, err)

	t.Run("payload bit flip", func(t *testing.T) {
		payload, sig, _ := strings.Cut(token, ".")
		flipped := flipFirstChar(payload) + "." + sig
		_, err := codec.Decode(flipped)
		require.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("signature bit flip", func(t *testing.T) {
		payload, sig, _ := strings.Cut(token, ".")
		flipped := payload + "." + flipFirstChar(sig)
		_, err := codec.Decode(flipped)
		require.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := New([]byte("another-secret"))
		require.NoError(t, err)
		_, err = other.Decode(token)
		require.ErrorIs(t, err, ErrBadSignature)
	})
}

func TestDecode_InvalidPayload(t *testing.T) {
	codec, err := New(testSecret)
	require.NoError(t, err)

	// Sign arbitrary payloads directly so the signature check passes and the
	// payload parsing is what fails.
	sign := func(payload string) string { return payload + "." + codec.sign(payload) }

	t.Run("not base64", func(t *testing.T) {
		_, err := codec.Decode(sign("!!not-base64!!"))
		require.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := codec.Decode(sign("bm90IGpzb24=")) // "not json"
		require.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("missing fields", func(t *testing.T) {
		// {"bookingId":"b"} base64-encoded.
		_, err := codec.Decode(sign("eyJib29raW5nSWQiOiJiIn0="))
		require.ErrorIs(t, err, ErrInvalidPayload)
	})
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	codec, err := New(testSecret)
	require.NoError(t, err)

	claims := testClaims()
	expiry := claims.ExpiresAt()

	token, err := codec.Encode(claims)
	require.NoError(t, err)

	t.Run("1ms before expiry", func(t *testing.T) {
		got, err := codec.Verify(token, expiry.Add(-time.Millisecond))
		require.NoError(t, err)
		require.Equal(t, claims, got)
	})

	t.Run("at expiry", func(t *testing.T) {
		_, err := codec.Verify(token, expiry)
		require.NoError(t, err)
	})

	t.Run("1ms after expiry", func(t *testing.T) {
		_, err := codec.Verify(token, expiry.Add(time.Millisecond))
		require.ErrorIs(t, err, ErrExpired)
	})
}

func TestVerify_PropagatesDecodeErrors(t *testing.T) {
	codec, err := New(testSecret)
	require.NoError(t, err)

	_, err = codec.Verify("garbage", time.Now())
	require.ErrorIs(t, err, ErrMalformedToken)
}

func flipFirstChar(s string) string {
	b := []byte(s)
	if b[0] == 'A' {
		b[0] = 'B'
	} else {
		b[0] = 'A'
	}
	return string(b)
}
