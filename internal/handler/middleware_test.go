package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/avendel/textamend/internal/handler"
	"github.com/avendel/textamend/internal/repository/sqlite"
	"github.com/avendel/textamend/internal/service"
	"github.com/avendel/textamend/internal/textproc"
)

const testJWTSecret = "test-secret-for-handler-tests"

// Function adapters standing in for the external text services.
type spellFunc func(string) string

func (f spellFunc) Correct(_ context.Context, text string) string { return f(text) }

type grammarFunc func(string, string) string

func (f grammarFunc) Correct(_ context.Context, text, lang string) string { return f(text, lang) }

type translateFunc func(string, string) string

func (f translateFunc) Translate(_ context.Context, text, target string) string {
	return f(text, target)
}

type toneFunc func(string) textproc.Tone

func (f toneFunc) Detect(_ context.Context, text string) textproc.Tone { return f(text) }

func newTestServices(t *testing.T) (*service.AuthService, *service.ProcessService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), db.Sessions(), testJWTSecret, 4)
	proc := service.NewProcessService(db.Sessions(), db.Logs(),
		grammarFunc(func(text, _ string) string { return text }),
		spellFunc(func(text string) string { return text }),
		translateFunc(func(text, _ string) string { return "translated: " + text }),
		toneFunc(func(string) textproc.Tone { return textproc.ToneNeutral }),
		[]string{"en", "hi"},
	)
	return auth, proc
}

func registerAndLogin(t *testing.T, auth *service.AuthService) string {
	t.Helper()
	ctx := context.Background()
	_, err := auth.Register(ctx, service.Registration{
		Username:  "mariah",
		Password:  "password123",
		FirstName: "Mariah",
		LastName:  "Olsen",
		Email:     "mariah@example.com",
		Phone:     "+4791234567",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := auth.Login(ctx, "mariah", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return token
}

func TestRequireAuth_ValidToken(t *testing.T) {
	auth, _ := newTestServices(t)
	token := registerAndLogin(t, auth)

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := handler.UserFromContext(r.Context()); user != nil {
			gotUser = user.Username
		}
		if handler.SessionFromContext(r.Context()) == nil {
			t.Error("expected session in context")
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, false, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != "mariah" {
		t.Fatalf("expected user mariah, got %q", gotUser)
	}
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	auth, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, false, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	auth, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "invalid.jwt.token"})
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, false, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_RedirectMode(t *testing.T) {
	auth, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	// Same guard, browser-oriented rejection.
	handler.RequireAuth(auth, true, inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestRequireAuth_AfterLogout(t *testing.T) {
	auth, _ := newTestServices(t)
	token := registerAndLogin(t, auth)

	sessionID, err := auth.SessionID(token)
	if err != nil {
		t.Fatalf("SessionID: %v", err)
	}
	if err := auth.Logout(context.Background(), sessionID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, false, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}
