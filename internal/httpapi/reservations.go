package httpapi

import (
	"net/http"

	"github.com/sbedoyat/carhub/internal/store"
)

type reservationRequest struct {
	CarID           int64  `json:"car_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	TotalPriceCents int64  `json:"total_price_cents"`
	Status          string `json:"status"`
}

func (a *App) handleAddReservation(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerFrom(r.Context())
	var req reservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CarID == 0 || req.StartDate == "" || req.EndDate == "" || req.TotalPriceCents <= 0 {
		writeMsg(w, http.StatusBadRequest, "All fields are required: car_id, start_date, end_date, total_price_cents")
		return
	}
	if req.Status != "" && !store.ValidReservationStatus(req.Status) {
		writeMsg(w, http.StatusBadRequest, "Invalid status value")
		return
	}
	exists, err := a.Store.CarExists(r.Context(), req.CarID)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if !exists {
		writeMsg(w, http.StatusNotFound, "Car not found")
		return
	}
	id, err := a.Store.AddReservation(r.Context(), &store.Reservation{
		UserID:          userID,
		CarID:           req.CarID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TotalPriceCents: req.TotalPriceCents,
		Status:          req.Status,
	})
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Reservation added successfully", "reservationId": id})
}

func (a *App) handleListReservations(w http.ResponseWriter, r *http.Request) {
	res, err := a.Store.ListReservations(r.Context())
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if res == nil {
		res = []store.Reservation{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *App) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := a.Store.GetReservation(r.Context(), id)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if res == nil {
		writeMsg(w, http.StatusNotFound, "Reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *App) handleUpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !store.ValidReservationStatus(req.Status) {
		writeMsg(w, http.StatusBadRequest, "Invalid status value")
		return
	}
	n, err := a.Store.UpdateReservationStatus(r.Context(), id, req.Status)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Reservation not found")
		return
	}
	writeMsg(w, http.StatusOK, "Reservation updated successfully")
}

func (a *App) handleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	n, err := a.Store.DeleteReservation(r.Context(), id)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Reservation not found")
		return
	}
	writeMsg(w, http.StatusOK, "Reservation deleted successfully")
}
