package httpapi

import (
	"net/http"

	"github.com/sbedoyat/carhub/internal/store"
)

type serviceRequest struct {
	CarID       int64  `json:"car_id"`
	LocationID  int64  `json:"location_id"`
	ServiceDate string `json:"service_date"`
	Description string `json:"description"`
	CostCents   *int64 `json:"cost_cents"`
	Status      string `json:"status"`
}

func (a *App) handleAddService(w http.ResponseWriter, r *http.Request) {
	userID, _ := callerFrom(r.Context())
	var req serviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CarID == 0 || req.LocationID == 0 || req.ServiceDate == "" || req.Description == "" || req.CostCents == nil {
		writeMsg(w, http.StatusBadRequest, "All fields are required: car_id, location_id, service_date, description, cost_cents")
		return
	}
	id, err := a.Store.AddService(r.Context(), &store.ServiceOrder{
		UserID:      userID,
		CarID:       req.CarID,
		LocationID:  req.LocationID,
		ServiceDate: req.ServiceDate,
		Description: req.Description,
		CostCents:   *req.CostCents,
		Status:      store.ServicePending,
	})
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Service booked successfully", "serviceId": id})
}

func (a *App) handleListServices(w http.ResponseWriter, r *http.Request) {
	out, err := a.Store.ListServices(r.Context())
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if out == nil {
		out = []store.ServiceOrder{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleGetService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	o, err := a.Store.GetService(r.Context(), id)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if o == nil {
		writeMsg(w, http.StatusNotFound, "Service not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (a *App) handleServicesByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	out, err := a.Store.ServicesByUser(r.Context(), userID)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if out == nil {
		out = []store.ServiceOrder{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleServicesByLocation(w http.ResponseWriter, r *http.Request) {
	locID, ok := pathID(w, r, "locationId")
	if !ok {
		return
	}
	out, err := a.Store.ServicesByLocation(r.Context(), locID)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if out == nil {
		out = []store.ServiceOrder{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleUpdateServiceStatus(w http.ResponseWriter, r *http.Request) {
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
	if !store.ValidServiceStatus(req.Status) {
		writeMsg(w, http.StatusBadRequest, "Invalid status value")
		return
	}
	n, err := a.Store.UpdateServiceStatus(r.Context(), id, req.Status)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Service not found")
		return
	}
	writeMsg(w, http.StatusOK, "Service status updated successfully")
}

func (a *App) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req serviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LocationID == 0 || req.ServiceDate == "" || req.Description == "" || req.CostCents == nil || req.Status == "" {
		writeMsg(w, http.StatusBadRequest, "All fields are required: location_id, service_date, description, cost_cents, status")
		return
	}
	if !store.ValidServiceStatus(req.Status) {
		writeMsg(w, http.StatusBadRequest, "Invalid status value")
		return
	}
	n, err := a.Store.UpdateService(r.Context(), id, &store.ServiceOrder{
		LocationID:  req.LocationID,
		ServiceDate: req.ServiceDate,
		Description: req.Description,
		CostCents:   *req.CostCents,
		Status:      req.Status,
	})
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Service not found")
		return
	}
	writeMsg(w, http.StatusOK, "Service updated successfully")
}

func (a *App) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	n, err := a.Store.DeleteService(r.Context(), id)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Service not found")
		return
	}
	writeMsg(w, http.StatusOK, "Service deleted successfully")
}
