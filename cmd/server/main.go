package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-dashboard/internal/accounts"
	"finance-dashboard/internal/config"
	"finance-dashboard/internal/handlers"
	"finance-dashboard/internal/session"
	"finance-dashboard/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.DataBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("store ready", "backend", cfg.DataBackend)

	svc := accounts.NewService(store)
	if err := bootstrapAdmin(store, svc, cfg); err != nil {
		slog.Error("failed to bootstrap admin account", "error", err)
		os.Exit(1)
	}

	h := handlers.NewHandlers(store, svc, session.NewManager(), "web/templates", cfg.SecureCookie)
	mux := setupRouter(h, "web/static")

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        mux,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
		cancel()
	}()

	slog.Info("starting server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("server stopped gracefully")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DataBackend == config.BackendMemory {
		return storage.NewMemory(), nil
	}
	return storage.NewDB(cfg.DBPath)
}

// bootstrapAdmin registers the ADMIN_USER account if configured and absent.
func bootstrapAdmin(store storage.Store, svc *accounts.Service, cfg *config.Config) error {
	if cfg.AdminUser == "" {
		return nil
	}
	if _, err := store.GetUserByUsername(cfg.AdminUser); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	user, err := svc.Register(cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		return err
	}
	slog.Info("bootstrap account created", "username", user.Username, "id", user.ID)
	return nil
}

func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})

	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /signup", h.SignupForm)
	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.Handle("GET /dashboard", h.AuthMiddleware(http.HandlerFunc(h.Dashboard)))
	mux.Handle("POST /transactions", h.AuthMiddleware(http.HandlerFunc(h.AddTransaction)))
	mux.Handle("POST /transactions/{id}/delete", h.AuthMiddleware(http.HandlerFunc(h.DeleteTransaction)))
	mux.Handle("POST /transactions/clear", h.AuthMiddleware(http.HandlerFunc(h.ClearTransactions)))
	mux.Handle("POST /transactions/sample", h.AuthMiddleware(http.HandlerFunc(h.LoadSample)))
	mux.Handle("GET /export", h.AuthMiddleware(http.HandlerFunc(h.Export)))

	return mux
}
