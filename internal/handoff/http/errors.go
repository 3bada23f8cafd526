package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rentloop/handoff/internal/handoff/service"
	"github.com/rentloop/handoff/pkg/handoffsdk"
	"github.com/rentloop/handoff/pkg/httpx"
	"github.com/rentloop/handoff/pkg/qrtoken"
)

// writeServiceError maps service and codec errors onto the API error
// vocabulary. Anything unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := http.StatusInternalServerError
	resp := handoffsdk.ErrorResponse{
		Error:            handoffsdk.ErrorCodeServerError,
		ErrorDescription: "Internal server error",
	}

	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		status = http.StatusBadRequest
		resp.Error = handoffsdk.ErrorCodeInvalidRequest
		resp.ErrorDescription = err.Error()
	case errors.Is(err, service.ErrNoBookingDates):
		status = http.StatusUnprocessableEntity
		resp.Error = handoffsdk.ErrorCodeNoBookingDates
		resp.ErrorDescription = "Booking has no dates to derive an expiry from"
	case errors.Is(err, qrtoken.ErrMalformedToken):
		status = http.StatusBadRequest
		resp.Error = handoffsdk.ErrorCodeMalformedToken
		resp.ErrorDescription = "Token is not in payload.signature form"
	case errors.Is(err, qrtoken.ErrBadSignature):
		status = http.StatusBadRequest
		resp.Error = handoffsdk.ErrorCodeBadSignature
		resp.ErrorDescription = "Token signature does not match"
	case errors.Is(err, qrtoken.ErrInvalidPayload):
		status = http.StatusBadRequest
		resp.Error = handoffsdk.ErrorCodeInvalidPayload
		resp.ErrorDescription = "Token payload is not a complete claims document"
	case errors.Is(err, qrtoken.ErrExpired):
		status = http.StatusBadRequest
		resp.Error = handoffsdk.ErrorCodeTokenExpired
		resp.ErrorDescription = "Token has expired"
	case errors.Is(err, service.ErrBookingNotFound):
		status = http.StatusNotFound
		resp.Error = handoffsdk.ErrorCodeBookingNotFound
		resp.ErrorDescription = "Booking not found"
	case errors.Is(err, service.ErrBookingExists):
		status = http.StatusConflict
		resp.Error = handoffsdk.ErrorCodeBookingExists
		resp.ErrorDescription = "Booking already exists"
	case errors.Is(err, service.ErrTokenSuperseded):
		status = http.StatusConflict
		resp.Error = handoffsdk.ErrorCodeTokenSuperseded
		resp.ErrorDescription = "Token has been superseded by a reissue"
	case errors.Is(err, service.ErrAlreadyRedeemed):
		status = http.StatusConflict
		resp.Error = handoffsdk.ErrorCodeAlreadyRedeemed
		resp.ErrorDescription = "Action has already been redeemed for this booking"
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
		resp.Error = "unauthenticated"
		resp.ErrorDescription = "Caller identity missing"
	default:
		log.Error("unhandled service error", "error", err)
	}

	if status != http.StatusInternalServerError {
		log.Warn("request rejected", "status", status, "code", resp.Error, "error", err)
	}
	httpx.WriteJSON(w, status, resp)
}
