package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avendel/textamend/internal/service"
)

// Options controls handler behavior that differs between browser and
// API deployments.
type Options struct {
	// CookieSecure marks the auth cookie Secure; disable only for
	// local development.
	CookieSecure bool
	// RedirectUnauthenticated switches the auth guard (and logout)
	// from 401 JSON answers to 303 redirects to /login.
	RedirectUnauthenticated bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, proc *service.ProcessService, opts Options) {
	authHandler := NewAuthHandler(auth, opts.CookieSecure, opts.RedirectUnauthenticated)
	procHandler := NewProcessHandler(proc)
	dashHandler := NewDashboardHandler(proc)

	guard := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, opts.RedirectUnauthenticated, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", HandleRoot)
	mux.HandleFunc("GET /login", HandleLoginHint)
	mux.HandleFunc("GET /register", HandleRegisterHint)

	mux.HandleFunc("POST /register", authHandler.HandleRegister)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.HandleFunc("GET /logout", authHandler.HandleLogout)

	mux.Handle("GET /dashboard", guard(dashHandler.HandleDashboard))
	mux.Handle("GET /history", guard(procHandler.HandleHistory))
	mux.Handle("POST /spell", guard(procHandler.HandleSpell))
	mux.Handle("POST /grammar", guard(procHandler.HandleGrammar))
	mux.Handle("POST /translate", guard(procHandler.HandleTranslate))
	mux.Handle("POST /upload", guard(procHandler.HandleUpload))
}

// HandleHealthz responds with a 200 OK and a JSON body indicating the server is healthy.
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// HandleRoot redirects the bare root to the login entry point.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLoginHint answers browser probes of the login path in the JSON
// variant of the API.
func HandleLoginHint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "POST {\"username\",\"password\"} to /login to authenticate.",
	})
}

// HandleRegisterHint answers browser probes of the register path.
func HandleRegisterHint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "POST registration fields to /register to create an account.",
	})
}
