package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avendel/textamend/internal/handler"
	"github.com/avendel/textamend/internal/repository/sqlite"
	"github.com/avendel/textamend/internal/service"
	"github.com/avendel/textamend/internal/textproc"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if os.Getenv("LOG_LEVEL") == "debug" {
		logOpts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	slog.SetDefault(logger)

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "textamend.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	// Default to secure cookies; disable only for local development.
	cookieSecure := os.Getenv("COOKIE_SECURE") != "false"

	// Redirect mode serves browser deployments; the default is the
	// JSON API contract (401 instead of a redirect to /login).
	redirectUnauthenticated := os.Getenv("AUTH_REDIRECT") == "true"

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	adapterTimeout := 10 * time.Second
	if v := os.Getenv("ADAPTER_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			slog.Error("invalid ADAPTER_TIMEOUT", "error", err)
			os.Exit(1)
		}
		adapterTimeout = parsed
	}

	languageToolURL := envOrDefault("LANGUAGETOOL_URL", "http://localhost:8010")
	translateURL := envOrDefault("TRANSLATE_URL", "http://localhost:5000")
	sentimentURL := envOrDefault("SENTIMENT_URL", "http://localhost:5001")

	// Languages for which uploads are grammar-corrected instead of
	// translated. A proxy for "the grammar engine supports this".
	grammarLangs := strings.Split(envOrDefault("GRAMMAR_LANGS", "en,hi"), ",")

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	// Long-lived adapter clients, constructed once and shared.
	languageTool := textproc.NewLanguageTool(languageToolURL, adapterTimeout)
	speller := textproc.NewSpeller(languageTool, service.DefaultLanguage)
	translator := textproc.NewTranslateClient(translateURL, adapterTimeout)
	tone := textproc.NewSentimentClient(sentimentURL, adapterTimeout)

	authService := service.NewAuthService(db.Users(), db.Sessions(), jwtSecret, bcryptCost)
	processService := service.NewProcessService(db.Sessions(), db.Logs(),
		languageTool, speller, translator, tone, grammarLangs)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, processService, handler.Options{
		CookieSecure:            cookieSecure,
		RedirectUnauthenticated: redirectUnauthenticated,
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
