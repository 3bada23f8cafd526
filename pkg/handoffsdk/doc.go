/*
Package handoffsdk provides the request/response types for the rentloop
handoff token service and a small typed HTTP client for them.

The service issues a matched pair of signed tokens per booking — one
authorizing the physical handover of the asset, one its return — and redeems
them exactly once:

	client := handoffsdk.NewClient("https://handoff.internal", bearerToken)

	issued, err := client.IssueTokens(ctx, handoffsdk.IssueTokensRequest{
		BookingID: bookingID,
		UserID:    renterID,
		AssetID:   assetID,
	})

	// later, at the handover itself
	result, err := client.RedeemToken(ctx, handoffsdk.RedeemTokenRequest{
		Token: scannedCode,
	})

Errors carry the service's error code (see the ErrorCode constants); use
errors.As with *APIError to branch on them. Only "server_error" responses
are worth retrying — every other code is deterministic for the same input.
*/
package handoffsdk
