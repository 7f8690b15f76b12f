// Package account contains the HTTP handlers for login, signup, logout and
// the signed-in user's profile.
//
// Every handler that writes to the backend masks the phone and CEP, then
// runs validation.Validate and stops at the first failing rule. The
// backend is never called with a record the validator rejected.
//
// Handlers are factories: each receives its dependencies once at startup
// and returns the http.HandlerFunc the router calls on every request.
package account

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/boraler/boraler-web/internal/backend"
	"github.com/boraler/boraler-web/internal/cep"
	"github.com/boraler/boraler-web/internal/http/middleware"
	"github.com/boraler/boraler-web/internal/http/session"
	"github.com/boraler/boraler-web/internal/phone"
	"github.com/boraler/boraler-web/internal/types"
	"github.com/boraler/boraler-web/internal/utils/request"
	"github.com/boraler/boraler-web/internal/utils/response"
	"github.com/boraler/boraler-web/internal/validation"
)

// Backend is the part of backend.Client the account handlers use.
type Backend interface {
	Login(ctx context.Context, email, password string) (types.User, error)
	UpsertUser(ctx context.Context, p backend.UserPayload) (types.User, error)
	GetUser(ctx context.Context, id types.UserID) (types.User, error)
}

// Success messages shown after the redirect.
const (
	MessageLoggedIn   = "Login realizado com sucesso!"
	MessageSignedUp   = "Usuário registrado com sucesso!"
	MessageSavedUser  = "Alterações salvas com sucesso!"
	messageNoIdentity = "O servidor não retornou o usuário. Tente novamente."
)

// Result is the success body of login, signup and profile updates.
type Result struct {
	Status  string     `json:"status"`
	Message string     `json:"message,omitempty"`
	User    types.User `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// decodeRecord reads the body into dst, writing a 400 on failure.
func decodeRecord(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := request.DecodeJSON(r, dst); err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}
	return true
}

// rejectInvalid writes the first validation failure, if any.
func rejectInvalid(w http.ResponseWriter, rec types.SignupRecord, mode types.ValidationMode) bool {
	if verr := validation.Validate(rec, mode); verr != nil {
		slog.Info("form rejected",
			slog.String("mode", string(mode)),
			slog.String("field", verr.Field))
		response.WriteJSON(w, http.StatusBadRequest, response.Message(verr.Message))
		return true
	}
	return false
}

// normalize applies the display masks the form applies while typing, so
// the backend stores the same text the user saw. It runs before
// validation: a value with no digits masks to "" and counts as missing.
func normalize(rec types.SignupRecord) types.SignupRecord {
	rec.Phone = phone.Format(rec.Phone)
	_, rec.PostalCode = cep.Normalize(rec.PostalCode)
	return rec
}

// ─────────────────────────────────────────────────────────────────────────────
// Login handles POST /api/auth/login
//
// Request body (JSON):
//
//	{ "email": "ana@example.com", "password": "segredo" }
//
// Success (200): Result, plus the session cookie.
// Errors: 400 validation, backend status for rejected credentials, 502.
// ─────────────────────────────────────────────────────────────────────────────
func Login(b Backend, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in credentials
		if !decodeRecord(w, r, &in) {
			return
		}

		rec := types.SignupRecord{Email: in.Email, Password: in.Password}
		if rejectInvalid(w, rec, types.ModeLogin) {
			return
		}

		user, err := b.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			slog.Error("login failed", slog.String("error", err.Error()))
			response.Upstream(w, err)
			return
		}
		if user.ID == "" {
			response.WriteJSON(w, http.StatusBadGateway, response.Message(messageNoIdentity))
			return
		}

		sessions.Set(w, user.ID)
		slog.Info("user logged in", slog.String("user_id", string(user.ID)))
		response.WriteJSON(w, http.StatusOK, Result{Status: response.StatusOK, Message: MessageLoggedIn, User: user})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Signup handles POST /api/auth/signup
//
// Request body: a types.SignupRecord. Success (201): Result plus cookie.
// ─────────────────────────────────────────────────────────────────────────────
func Signup(b Backend, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec types.SignupRecord
		if !decodeRecord(w, r, &rec) {
			return
		}
		rec = normalize(rec)
		if rejectInvalid(w, rec, types.ModeSignup) {
			return
		}

		user, err := b.UpsertUser(r.Context(), backend.UserPayloadFrom("", rec))
		if err != nil {
			slog.Error("signup failed", slog.String("error", err.Error()))
			response.Upstream(w, err)
			return
		}
		if user.ID == "" {
			response.WriteJSON(w, http.StatusBadGateway, response.Message(messageNoIdentity))
			return
		}

		sessions.Set(w, user.ID)
		slog.Info("user registered", slog.String("user_id", string(user.ID)))
		response.WriteJSON(w, http.StatusCreated, Result{Status: response.StatusOK, Message: MessageSignedUp, User: user})
	}
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
func Logout(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Clear(w)
		response.WriteJSON(w, http.StatusOK, response.OK())
	}
}

// GetProfile handles GET /api/profile. Requires middleware.RequireSession.
func GetProfile(b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := session.FromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.Message(middleware.MessageLoginRequired))
			return
		}

		user, err := b.GetUser(r.Context(), id)
		if err != nil {
			slog.Error("profile fetch failed", slog.String("user_id", string(id)), slog.String("error", err.Error()))
			response.Upstream(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, user)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateProfile handles PUT /api/profile. Requires middleware.RequireSession.
//
// The password is never changed from this form: whatever the body carries,
// an empty Pass is forwarded.
// ─────────────────────────────────────────────────────────────────────────────
func UpdateProfile(b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := session.FromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.Message(middleware.MessageLoginRequired))
			return
		}

		var rec types.SignupRecord
		if !decodeRecord(w, r, &rec) {
			return
		}
		rec = normalize(rec)
		if rejectInvalid(w, rec, types.ModeUpdate) {
			return
		}

		rec.Password = ""
		user, err := b.UpsertUser(r.Context(), backend.UserPayloadFrom(id, rec))
		if err != nil {
			slog.Error("profile update failed", slog.String("user_id", string(id)), slog.String("error", err.Error()))
			response.Upstream(w, err)
			return
		}
		if user.ID == "" {
			user.ID = id
		}

		slog.Info("profile updated", slog.String("user_id", string(id)))
		response.WriteJSON(w, http.StatusOK, Result{Status: response.StatusOK, Message: MessageSavedUser, User: user})
	}
}
