package httpapi

import (
	"net/http"

	"github.com/sbedoyat/carhub/internal/events"
	"github.com/sbedoyat/carhub/internal/store"
)

type addPartRequest struct {
	Name          string `json:"name"`
	Brand         string `json:"brand"`
	PriceCents    int64  `json:"price_cents"`
	StockQuantity *int32 `json:"stock_quantity"`
	LocationID    int64  `json:"location_id"`
}

func (a *App) handleAddPart(w http.ResponseWriter, r *http.Request) {
	var req addPartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Brand == "" || req.PriceCents < 0 || req.StockQuantity == nil || req.LocationID == 0 {
		writeMsg(w, http.StatusBadRequest, "All fields are required: name, brand, price_cents, stock_quantity, location_id")
		return
	}
	if *req.StockQuantity < 0 {
		writeMsg(w, http.StatusBadRequest, "Invalid stock quantity")
		return
	}
	id, err := a.Store.AddPart(r.Context(), &store.SparePart{
		Name:          req.Name,
		Brand:         req.Brand,
		PriceCents:    req.PriceCents,
		StockQuantity: *req.StockQuantity,
		LocationID:    req.LocationID,
	})
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	_ = a.Events.Publish(events.RKPartCreated, map[string]int64{"spare_part_id": id})
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Spare part added successfully", "sparePartId": id})
}

func (a *App) handleListParts(w http.ResponseWriter, r *http.Request) {
	parts, err := a.Store.ListParts(r.Context())
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if parts == nil {
		parts = []store.SparePart{}
	}
	writeJSON(w, http.StatusOK, parts)
}

func (a *App) handleGetPart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := a.Store.GetPart(r.Context(), id)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if p == nil {
		writeMsg(w, http.StatusNotFound, "Spare part not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleSetPartStock is the restock/adjust path; reservations never go
// through here.
func (a *App) handleSetPartStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		StockQuantity *int32 `json:"stock_quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.StockQuantity == nil || *req.StockQuantity < 0 {
		writeMsg(w, http.StatusBadRequest, "Invalid stock quantity")
		return
	}
	n, err := a.Store.SetPartStock(r.Context(), id, *req.StockQuantity)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Spare part not found")
		return
	}
	_ = a.Events.Publish(events.RKPartStockSet, events.StockSet{PartID: id, Quantity: *req.StockQuantity})
	writeMsg(w, http.StatusOK, "Stock updated successfully")
}

func (a *App) handleDeletePart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	n, err := a.Store.DeletePart(r.Context(), id)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Spare part not found")
		return
	}
	writeMsg(w, http.StatusOK, "Spare part deleted successfully")
}
