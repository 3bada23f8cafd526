package http

import (
	"net/http"

	"github.com/rentloop/handoff/internal/handoff/service"
	"github.com/rentloop/handoff/pkg/handoffsdk"
	"github.com/rentloop/handoff/pkg/httpx"
	"github.com/rentloop/handoff/pkg/slogx"
)

type VerifyHandler struct {
	RedemptionService *service.RedemptionService
}

// ServeHTTP godoc
//
//	@Summary		Verify Token Endpoint
//	@Description	Check a token's signature, payload, and expiry without consuming it. Verification is read-only:
//	@Description	a token that verifies can still be rejected at redemption if it has been superseded by a reissue
//	@Description	or its action has already been redeemed.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handoffsdk.VerifyTokenRequest	true	"Token to verify"
//	@Success		200		{object}	handoffsdk.VerifyTokenResponse	"valid, action, booking_id, expires_at, remaining_ms"
//	@Failure		400		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tokens/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req handoffsdk.VerifyTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.RedemptionService.Verify(ctx, httpx.CallerID(ctx), req.Token)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, handoffsdk.VerifyTokenResponse{
		Valid:       true,
		Action:      string(v.Claims.Action),
		BookingID:   v.Claims.BookingID,
		ExpiresAt:   v.ExpiresAt,
		RemainingMS: v.Remaining.Milliseconds(),
	})
}
