package httpapi

import (
	"net/http"

	"github.com/sbedoyat/carhub/internal/store"
)

type locationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (a *App) handleAddLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Address == "" || req.Phone == "" {
		writeMsg(w, http.StatusBadRequest, "All fields are required: name, address, phone")
		return
	}
	id, err := a.Store.AddLocation(r.Context(), &store.Location{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Location added successfully", "locationId": id})
}

func (a *App) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := a.Store.ListLocations(r.Context())
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if locs == nil {
		locs = []store.Location{}
	}
	writeJSON(w, http.StatusOK, locs)
}

func (a *App) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loc, err := a.Store.GetLocation(r.Context(), id)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if loc == nil {
		writeMsg(w, http.StatusNotFound, "Location not found")
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (a *App) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req locationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" && req.Address == "" && req.Phone == "" {
		writeMsg(w, http.StatusBadRequest, "Provide at least one field to update")
		return
	}
	n, err := a.Store.UpdateLocation(r.Context(), id, req.Name, req.Address, req.Phone)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Location not found")
		return
	}
	writeMsg(w, http.StatusOK, "Location updated successfully")
}

func (a *App) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	n, err := a.Store.DeleteLocation(r.Context(), id)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Location not found")
		return
	}
	writeMsg(w, http.StatusOK, "Location deleted successfully")
}
