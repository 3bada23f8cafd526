package http

import (
	"net/http"

	"github.com/rentloop/handoff/internal/handoff/service"
	"github.com/rentloop/handoff/pkg/handoffsdk"
	"github.com/rentloop/handoff/pkg/httpx"
	"github.com/rentloop/handoff/pkg/slogx"
)

type BookingsHandler struct {
	BookingService *service.BookingService
}

// HandleCreate godoc
//
//	@Summary		Register Booking Endpoint
//	@Description	Register a booking with the service so token pairs can be issued against it. The booking is
//	@Description	stored under both its owner and its asset, and both copies are kept in lockstep from then on.
//	@Tags			Bookings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handoffsdk.CreateBookingRequest		true	"Booking to register"
//	@Success		201		{object}	handoffsdk.CreateBookingResponse	"booking_id, owner_user_id, asset_id, dates"
//	@Failure		400		{object}	handoffsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	handoffsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	handoffsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	handoffsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/bookings [post].
func (h *BookingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req handoffsdk.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.BookingService.CreateBooking(ctx, httpx.CallerID(ctx), service.CreateBookingParams{
		BookingID:   req.BookingID,
		OwnerUserID: req.OwnerUserID,
		AssetID:     req.AssetID,
		Dates:       req.Dates,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, handoffsdk.CreateBookingResponse{
		BookingID:   booking.ID,
		OwnerUserID: booking.OwnerUserID,
		AssetID:     booking.AssetID,
		Dates:       booking.Dates,
	})
}

// HandleListEvents godoc
//
//	@Summary		Booking Audit Trail Endpoint
//	@Description	List a booking's redemption events in append order. The booking is looked up under the caller's
//	@Description	own bookings unless owner_user_id names another owner.
//	@Tags			Bookings
//	@Produce		json
//	@Param			bookingID		path		string						true	"Booking ID"
//	@Param			owner_user_id	query		string						false	"Owner to look the booking up under (defaults to the caller)"
//	@Success		200				{object}	handoffsdk.ListEventsResponse	"events"
//	@Failure		401				{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	handoffsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/bookings/{bookingID}/events [get].
func (h *BookingsHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bookingID := r.PathValue("bookingID")
	ownerUserID := r.URL.Query().Get("owner_user_id")
	if ownerUserID == "" {
		ownerUserID = httpx.CallerID(ctx)
	}

	events, err := h.BookingService.Events(ctx, httpx.CallerID(ctx), ownerUserID, bookingID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	resp := handoffsdk.ListEventsResponse{Events: make([]handoffsdk.EventRecord, 0, len(events))}
	for _, ev := range events {
		resp.Events = append(resp.Events, handoffsdk.EventRecord{
			ID:           ev.ID,
			BookingID:    ev.BookingID,
			Action:       string(ev.Action),
			ActorID:      ev.ActorID,
			RedemptionID: ev.RedemptionID,
			VerifiedAt:   ev.VerifiedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
