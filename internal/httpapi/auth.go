package httpapi

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sbedoyat/carhub/internal/events"
	"github.com/sbedoyat/carhub/internal/store"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" || req.Role == "" {
		writeMsg(w, http.StatusBadRequest, "All fields are required: name, email, password, phone, role")
		return
	}
	if !store.ValidRole(req.Role) {
		writeMsg(w, http.StatusBadRequest, "Invalid role")
		return
	}

	existing, err := a.Store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if existing != nil {
		writeMsg(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.Cfg.BcryptCost)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	u := &store.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         req.Role,
	}
	id, err := a.Store.CreateUser(r.Context(), u)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	_ = a.Events.Publish(events.RKUserCreated, events.UserCreated{UserID: id, Name: u.Name, Role: u.Role})
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User registered successfully", "userId": id})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := a.Store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		writeMsg(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := a.Store.CreateSession(r.Context(), u.ID, u.Role, a.Cfg.TokenTTL)
	if err != nil {
		writeDBErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"role":    u.Role,
	})
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := a.Store.DeleteSession(r.Context(), token); err != nil {
		writeDBErr(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "Logout successful")
}
