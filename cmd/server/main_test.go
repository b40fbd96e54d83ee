package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-dashboard/internal/accounts"
	"finance-dashboard/internal/config"
	"finance-dashboard/internal/handlers"
	"finance-dashboard/internal/session"
	"finance-dashboard/internal/storage"
)

func TestSetupRouter(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	// Use relative paths for tests running in cmd/server
	if _, err := os.Stat("../../web/templates"); os.IsNotExist(err) {
		t.Skip("Template directory not found, skipping router test")
	}
	h := handlers.NewHandlers(db, accounts.NewService(db), session.NewManager(), "../../web/templates", false)

	mux := setupRouter(h, "../../web/static")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		allowAlt   []int // Alternative acceptable status codes
	}{
		{
			name:       "Root redirects to /dashboard",
			method:     "GET",
			path:       "/",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Static file access",
			method:     "GET",
			path:       "/static/style.css",
			wantStatus: http.StatusOK,
			allowAlt:   []int{http.StatusNotFound}, // File might not exist in test env
		},
		{
			name:       "Login page is public",
			method:     "GET",
			path:       "/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Signup page is public",
			method:     "GET",
			path:       "/signup",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Dashboard requires auth",
			method:     "GET",
			path:       "/dashboard",
			wantStatus: http.StatusFound, // Should redirect to login
		},
		{
			name:       "Export requires auth",
			method:     "GET",
			path:       "/export",
			wantStatus: http.StatusFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if len(tt.allowAlt) > 0 {
				acceptableStatuses := append([]int{tt.wantStatus}, tt.allowAlt...)
				assert.Contains(t, acceptableStatuses, w.Code,
					"%s %s returned unexpected status", tt.method, tt.path)
			} else {
				assert.Equal(t, tt.wantStatus, w.Code,
					"%s %s returned unexpected status", tt.method, tt.path)
			}
		})
	}
}

func TestBootstrapAdmin(t *testing.T) {
	store := storage.NewMemory()
	svc := accounts.NewService(store)
	cfg := &config.Config{AdminUser: "admin", AdminPassword: "testpass123"}

	require.NoError(t, bootstrapAdmin(store, svc, cfg))

	user, err := store.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	// Re-running is idempotent
	require.NoError(t, bootstrapAdmin(store, svc, cfg))
}

func TestBootstrapAdminDisabled(t *testing.T) {
	store := storage.NewMemory()
	svc := accounts.NewService(store)

	require.NoError(t, bootstrapAdmin(store, svc, &config.Config{}))

	_, err := store.GetUserByUsername("")
	assert.Error(t, err)
}
