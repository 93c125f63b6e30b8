package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sbedoyat/carhub/internal/config"
	"github.com/sbedoyat/carhub/internal/reserve"
	"github.com/sbedoyat/carhub/internal/store"
)

func newTestServer(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.Config{BcryptCost: 4, TokenTTL: time.Hour, LockWait: time.Second}
	app := NewApp(cfg, st, reserve.New(st, cfg.LockWait), nil)
	return NewRouter(app), st
}

func seedToken(t *testing.T, st *store.Store, name, email, role string) string {
	t.Helper()
	ctx := context.Background()
	id, err := st.CreateUser(ctx, &store.User{
		Name: name, Email: email, PasswordHash: "x", Phone: "555", Role: role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := st.CreateSession(ctx, id, role, time.Hour)
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return token
}

func seedPart(t *testing.T, st *store.Store, qty int32) int64 {
	t.Helper()
	id, err := st.AddPart(context.Background(), &store.SparePart{
		Name: "Brake pad set", Brand: "Brembo", PriceCents: 8990,
		StockQuantity: qty, LocationID: 1,
	})
	if err != nil {
		t.Fatalf("seed part: %v", err)
	}
	return id
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReserveEndpointStatusMapping(t *testing.T) {
	h, st := newTestServer(t)
	token := seedToken(t, st, "Alice", "alice@x.co", store.RoleCustomer)
	partID := seedPart(t, st, 5)

	// no token
	if rec := doJSON(t, h, "POST", "/api/spare-bookings", "", `{"spare_part_id":1,"quantity":1}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: got %d, want 401", rec.Code)
	}

	// invalid quantity
	if rec := doJSON(t, h, "POST", "/api/spare-bookings", token, `{"spare_part_id":1,"quantity":0}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("qty 0: got %d, want 400", rec.Code)
	}

	// unknown part
	if rec := doJSON(t, h, "POST", "/api/spare-bookings", token, `{"spare_part_id":999,"quantity":1}`); rec.Code != http.StatusNotFound {
		t.Fatalf("missing part: got %d, want 404", rec.Code)
	}

	// success
	rec := doJSON(t, h, "POST", "/api/spare-bookings", token, `{"spare_part_id":1,"quantity":3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("reserve: got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		BookingID int64 `json:"bookingId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.BookingID == 0 {
		t.Fatalf("missing bookingId in %s", rec.Body.String())
	}

	// oversell
	rec = doJSON(t, h, "POST", "/api/spare-bookings", token, `{"spare_part_id":1,"quantity":3}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("oversell: got %d, want 409", rec.Code)
	}
	var short struct {
		Requested int32 `json:"requested"`
		Available int32 `json:"available"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &short); err != nil || short.Requested != 3 || short.Available != 2 {
		t.Fatalf("conflict detail: %s", rec.Body.String())
	}

	// stock is down by exactly the committed booking
	p, err := st.GetPart(context.Background(), partID)
	if err != nil || p == nil {
		t.Fatalf("get part: %v", err)
	}
	if p.StockQuantity != 2 {
		t.Fatalf("stock: got %d, want 2", p.StockQuantity)
	}
}

func TestBookingListEndpoints(t *testing.T) {
	h, st := newTestServer(t)
	customer := seedToken(t, st, "Alice", "alice@x.co", store.RoleCustomer)
	employee := seedToken(t, st, "Bob", "bob@x.co", store.RoleEmployee)
	seedPart(t, st, 10)

	if rec := doJSON(t, h, "POST", "/api/spare-bookings", customer, `{"spare_part_id":1,"quantity":2}`); rec.Code != http.StatusCreated {
		t.Fatalf("reserve: %d %s", rec.Code, rec.Body.String())
	}

	// own bookings, joined with part fields
	rec := doJSON(t, h, "GET", "/api/spare-bookings/my", customer, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("my bookings: got %d", rec.Code)
	}
	var mine []store.BookingView
	if err := json.Unmarshal(rec.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(mine) != 1 || mine[0].PartName != "Brake pad set" || mine[0].PriceCents != 8990 {
		t.Fatalf("unexpected view: %s", rec.Body.String())
	}

	// listing everything is an employee-only view
	if rec := doJSON(t, h, "GET", "/api/spare-bookings", customer, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("customer list-all: got %d, want 403", rec.Code)
	}
	rec = doJSON(t, h, "GET", "/api/spare-bookings", employee, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("employee list-all: got %d", rec.Code)
	}
	var all []store.BookingView
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(all) != 1 || all[0].UserName != "Alice" {
		t.Fatalf("unexpected admin view: %s", rec.Body.String())
	}
}
