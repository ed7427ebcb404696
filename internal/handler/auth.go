package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avendel/textamend/internal/domain"
	"github.com/avendel/textamend/internal/service"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
	redirect     bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure, redirect bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure, redirect: redirect}
}

// HandleRegister processes a JSON registration request.
// POST /register
// Request:  {"username":"...","password":"...","first_name":"...","last_name":"...","email":"...","phone":"..."}
// Response: 201 {"user": {...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), service.Registration{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, "Username already exists.")
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, "Email already registered.")
		default:
			slog.Error("register user", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleLogin processes a JSON login request. On success a session is
// created and the token is set as an HttpOnly cookie.
// POST /login
// Request:  {"username":"...","password":"..."}
// Response: 200 {"user": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours, matches the token lifetime
	})

	user, _, err := h.auth.Authenticate(r.Context(), token)
	if err != nil {
		slog.Error("authenticate after login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleLogout deletes the server-side session (discarding all result
// slots) and expires the cookie. Idempotent: a caller with no session
// gets the same answer as one with a live session.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(authCookie); err == nil {
		if sessionID, err := h.auth.SessionID(cookie.Value); err == nil {
			if err := h.auth.Logout(r.Context(), sessionID); err != nil {
				slog.Error("logout", "error", err)
				writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
				return
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	if h.redirect {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
