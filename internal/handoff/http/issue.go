package http

import (
	"net/http"
	"time"

	"github.com/rentloop/handoff/internal/handoff/service"
	"github.com/rentloop/handoff/pkg/handoffsdk"
	"github.com/rentloop/handoff/pkg/httpx"
	"github.com/rentloop/handoff/pkg/slogx"
)

type IssueHandler struct {
	IssuerService *service.IssuerService
}

// HandleIssue godoc
//
//	@Summary		Issue Token Pair Endpoint
//	@Description	Mint a matched handover/return token pair for a booking and record the pair as the booking's live tokens.
//	@Description	The token strings are returned exactly once and cannot be reconstructed from storage afterwards.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handoffsdk.IssueTokensRequest	true	"Booking to issue for"
//	@Success		200		{object}	handoffsdk.IssueTokensResponse	"tokens, expiries"
//	@Failure		400		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		422		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tokens/issue [post].
func (h *IssueHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	h.mint(w, r, false)
}

// HandleReissue godoc
//
//	@Summary		Reissue Token Pair Endpoint
//	@Description	Mint a replacement token pair for a booking. The previous pair stays cryptographically valid but
//	@Description	is rejected at redemption as superseded, since its redemption ids no longer match the live pair.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handoffsdk.IssueTokensRequest	true	"Booking to reissue for"
//	@Success		200		{object}	handoffsdk.IssueTokensResponse	"tokens, expiries"
//	@Failure		400		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		422		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tokens/reissue [post].
func (h *IssueHandler) HandleReissue(w http.ResponseWriter, r *http.Request) {
	h.mint(w, r, true)
}

func (h *IssueHandler) mint(w http.ResponseWriter, r *http.Request, reissue bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req handoffsdk.IssueTokensRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := service.IssueParams{
		BookingID: req.BookingID,
		UserID:    req.UserID,
		AssetID:   req.AssetID,
		ExpiresIn: time.Duration(req.ExpiresInSec) * time.Second,
	}

	var (
		issued service.IssuedTokens
		err    error
	)
	if reissue {
		issued, err = h.IssuerService.Reissue(ctx, httpx.CallerID(ctx), params)
	} else {
		issued, err = h.IssuerService.Issue(ctx, httpx.CallerID(ctx), params)
	}
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, handoffsdk.IssueTokensResponse{
		Tokens: handoffsdk.TokenPair{
			Handover: issued.Handover.Token,
			Return:   issued.Return.Token,
		},
		Expiries: handoffsdk.ExpiryPair{
			Handover: issued.Handover.ExpiresAt,
			Return:   issued.Return.ExpiresAt,
		},
	})
}
