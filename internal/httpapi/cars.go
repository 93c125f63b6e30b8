package httpapi

import (
	"net/http"

	"github.com/sbedoyat/carhub/internal/events"
	"github.com/sbedoyat/carhub/internal/store"
)

type addCarRequest struct {
	Model        string `json:"model"`
	Brand        string `json:"brand"`
	Year         int32  `json:"year"`
	PriceCents   int64  `json:"price_cents"`
	Availability *bool  `json:"availability"`
	Image        string `json:"image"`
}

func (a *App) handleAddCar(w http.ResponseWriter, r *http.Request) {
	var req addCarRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Model == "" || req.Brand == "" || req.Year == 0 || req.PriceCents <= 0 {
		writeMsg(w, http.StatusBadRequest, "All fields are required: model, brand, year, price_cents")
		return
	}
	avail := true
	if req.Availability != nil {
		avail = *req.Availability
	}
	id, err := a.Store.AddCar(r.Context(), &store.Car{
		Model:        req.Model,
		Brand:        req.Brand,
		Year:         req.Year,
		PriceCents:   req.PriceCents,
		Availability: avail,
		Image:        req.Image,
	})
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	_ = a.Events.Publish(events.RKCarCreated, map[string]int64{"car_id": id})
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Car added successfully", "carId": id})
}

func (a *App) handleListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := a.Store.ListCars(r.Context())
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if cars == nil {
		cars = []store.Car{}
	}
	writeJSON(w, http.StatusOK, cars)
}

func (a *App) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	n, err := a.Store.DeleteCar(r.Context(), id)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if n == 0 {
		writeMsg(w, http.StatusNotFound, "Car not found")
		return
	}
	writeMsg(w, http.StatusOK, "Car deleted successfully")
}
