package httpapi

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sbedoyat/carhub/internal/events"
	"github.com/sbedoyat/carhub/internal/reserve"
	"github.com/sbedoyat/carhub/internal/store"
)

type reserveRequest struct {
	PartID   int64 `json:"spare_part_id"`
	Quantity int32 `json:"quantity"`
}

// handleReservePart is the single write path into the stock ledger for
// bookings. The engine owns validation, locking and the transaction;
// this handler only maps its failure taxonomy to status codes.
func (a *App) handleReservePart(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerFrom(r.Context())
	var req reserveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PartID <= 0 {
		writeMsg(w, http.StatusBadRequest, "Invalid part ID or quantity")
		return
	}

	bookingID, err := a.Engine.Reserve(r.Context(), userID, req.PartID, req.Quantity)
	if err != nil {
		var notFound reserve.ErrNoSuchPart
		var short reserve.ErrInsufficient
		switch {
		case errors.Is(err, reserve.ErrInvalidQuantity):
			writeMsg(w, http.StatusBadRequest, "Invalid part ID or quantity")
		case errors.As(err, &notFound):
			writeMsg(w, http.StatusNotFound, "Spare part not found")
		case errors.As(err, &short):
			writeJSON(w, http.StatusConflict, map[string]any{
				"message":   "Insufficient stock",
				"requested": short.Need,
				"available": short.Avail,
			})
		default:
			log.Error().Err(err).
				Int64("part_id", req.PartID).
				Str("request_id", requestIDFrom(r.Context())).
				Msg("reservation failed")
			writeMsg(w, http.StatusInternalServerError, "Booking failed")
		}
		return
	}

	_ = a.Events.Publish(events.RKBookingCreated, events.BookingCreated{
		BookingID: bookingID,
		UserID:    userID,
		PartID:    req.PartID,
		Quantity:  req.Quantity,
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Spare part booked successfully",
		"bookingId": bookingID,
	})
}

func (a *App) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerFrom(r.Context())
	out, err := a.Store.BookingsByUser(r.Context(), userID)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if out == nil {
		out = []store.BookingView{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleAllBookings(w http.ResponseWriter, r *http.Request) {
	out, err := a.Store.AllBookings(r.Context())
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if out == nil {
		out = []store.BookingView{}
	}
	writeJSON(w, http.StatusOK, out)
}
