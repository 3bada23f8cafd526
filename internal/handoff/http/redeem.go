package http

import (
	"net/http"

	"github.com/rentloop/handoff/internal/handoff/service"
	"github.com/rentloop/handoff/pkg/handoffsdk"
	"github.com/rentloop/handoff/pkg/httpx"
	"github.com/rentloop/handoff/pkg/slogx"
)

type RedeemHandler struct {
	RedemptionService *service.RedemptionService
}

// ServeHTTP godoc
//
//	@Summary		Redeem Token Endpoint
//	@Description	Consume a token, flipping the matching handover or return status on the booking exactly once and
//	@Description	appending an audit event. A token from a superseded pair is rejected with token_superseded; a
//	@Description	replayed token whose action already completed is rejected with already_redeemed.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handoffsdk.RedeemTokenRequest	true	"Token to redeem"
//	@Success		200		{object}	handoffsdk.RedeemTokenResponse	"booking_id, action"
//	@Failure		400		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tokens/redeem [post].
func (h *RedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req handoffsdk.RedeemTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	red, err := h.RedemptionService.Redeem(ctx, httpx.CallerID(ctx), req.Token)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, handoffsdk.RedeemTokenResponse{
		BookingID: red.BookingID,
		Action:    string(red.Action),
	})
}
