package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sbedoyat/carhub/internal/store"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyUserID
	ctxKeyRole
)

func requestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

// callerFrom returns the authenticated user id and role placed in the
// context by requireAuth.
func callerFrom(ctx context.Context) (int64, string) {
	id, _ := ctx.Value(ctxKeyUserID).(int64)
	role, _ := ctx.Value(ctxKeyRole).(string)
	return id, role
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, reqID)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sr.status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestIDFrom(r.Context())).
			Msg("http request")
	})
}

// requireAuth validates the bearer token and injects user id + role.
// The handlers past this point trust the context, not the client.
func (a *App) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || token == "" {
			writeMsg(w, http.StatusUnauthorized, "Access Denied: No token provided")
			return
		}
		ses, err := a.Store.SessionByToken(r.Context(), token)
		if err != nil {
			writeDBErr(w, r, err)
			return
		}
		if ses == nil {
			writeMsg(w, http.StatusForbidden, "Invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUserID, ses.UserID)
		ctx = context.WithValue(ctx, ctxKeyRole, ses.Role)
		next(w, r.WithContext(ctx))
	}
}

// requireEmployee admits employees and supervisors.
func (a *App) requireEmployee(next http.HandlerFunc) http.HandlerFunc {
	return a.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		_, role := callerFrom(r.Context())
		if role != store.RoleEmployee && role != store.RoleSupervisor {
			writeMsg(w, http.StatusForbidden, "Access Denied: Employees and Supervisors only")
			return
		}
		next(w, r)
	})
}

func (a *App) requireSupervisor(next http.HandlerFunc) http.HandlerFunc {
	return a.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		_, role := callerFrom(r.Context())
		if role != store.RoleSupervisor {
			writeMsg(w, http.StatusForbidden, "Access Denied: Supervisor only")
			return
		}
		next(w, r)
	})
}
