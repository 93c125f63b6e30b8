package httpapi

import (
	"net/http"

	"github.com/rs/cors"
)

// NewRouter wires every route with its role gate and the middleware
// chain (CORS for the dashboard, request ids, request logging).
func NewRouter(a *App) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", a.handleRoot)

	// auth
	mux.HandleFunc("POST /api/auth/register", a.handleRegister)
	mux.HandleFunc("POST /api/auth/login", a.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", a.requireAuth(a.handleLogout))

	// cars
	mux.HandleFunc("GET /api/cars", a.handleListCars)
	mux.HandleFunc("POST /api/cars", a.requireSupervisor(a.handleAddCar))
	mux.HandleFunc("DELETE /api/cars/{id}", a.requireSupervisor(a.handleDeleteCar))

	// locations
	mux.HandleFunc("GET /api/locations", a.handleListLocations)
	mux.HandleFunc("GET /api/locations/{id}", a.handleGetLocation)
	mux.HandleFunc("POST /api/locations", a.requireSupervisor(a.handleAddLocation))
	mux.HandleFunc("PUT /api/locations/{id}", a.requireSupervisor(a.handleUpdateLocation))
	mux.HandleFunc("DELETE /api/locations/{id}", a.requireSupervisor(a.handleDeleteLocation))

	// vehicle reservations (test drive / rental)
	mux.HandleFunc("POST /api/reservations", a.requireAuth(a.handleAddReservation))
	mux.HandleFunc("GET /api/reservations", a.requireAuth(a.handleListReservations))
	mux.HandleFunc("GET /api/reservations/{id}", a.requireAuth(a.handleGetReservation))
	mux.HandleFunc("PUT /api/reservations/{id}", a.requireSupervisor(a.handleUpdateReservation))
	mux.HandleFunc("DELETE /api/reservations/{id}", a.requireSupervisor(a.handleDeleteReservation))

	// workshop services
	mux.HandleFunc("POST /api/services", a.requireAuth(a.handleAddService))
	mux.HandleFunc("GET /api/services", a.requireEmployee(a.handleListServices))
	mux.HandleFunc("GET /api/services/{id}", a.requireEmployee(a.handleGetService))
	mux.HandleFunc("GET /api/services/user/{userId}", a.requireEmployee(a.handleServicesByUser))
	mux.HandleFunc("GET /api/services/location/{locationId}", a.requireEmployee(a.handleServicesByLocation))
	mux.HandleFunc("PUT /api/services/{id}/status", a.requireEmployee(a.handleUpdateServiceStatus))
	mux.HandleFunc("PUT /api/services/{id}", a.requireEmployee(a.handleUpdateService))
	mux.HandleFunc("DELETE /api/services/{id}", a.requireEmployee(a.handleDeleteService))

	// spare parts (stock ledger)
	mux.HandleFunc("POST /api/spare-parts", a.requireEmployee(a.handleAddPart))
	mux.HandleFunc("GET /api/spare-parts", a.requireEmployee(a.handleListParts))
	mux.HandleFunc("GET /api/spare-parts/{id}", a.requireEmployee(a.handleGetPart))
	mux.HandleFunc("PUT /api/spare-parts/{id}", a.requireEmployee(a.handleSetPartStock))
	mux.HandleFunc("DELETE /api/spare-parts/{id}", a.requireEmployee(a.handleDeletePart))

	// spare part bookings (reservation engine + journal reads)
	mux.HandleFunc("POST /api/spare-bookings", a.requireAuth(a.handleReservePart))
	mux.HandleFunc("GET /api/spare-bookings/my", a.requireAuth(a.handleMyBookings))
	mux.HandleFunc("GET /api/spare-bookings", a.requireEmployee(a.handleAllBookings))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
	})
	return withRequestID(withLogging(c.Handler(mux)))
}

func (a *App) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeMsg(w, http.StatusNotFound, "Route not found")
		return
	}
	writeMsg(w, http.StatusOK, "Welcome to the CarHub back-office API")
}
