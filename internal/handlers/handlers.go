package handlers

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"finance-dashboard/internal/accounts"
	"finance-dashboard/internal/models"
	"finance-dashboard/internal/session"
	"finance-dashboard/internal/storage"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "user"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store        storage.Store
	accounts     *accounts.Service
	sessions     *session.Manager
	templateDir  string
	secureCookie bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store storage.Store, accounts *accounts.Service, sessions *session.Manager, templateDir string, secureCookie bool) *Handlers {
	return &Handlers{
		store:        store,
		accounts:     accounts,
		sessions:     sessions,
		templateDir:  templateDir,
		secureCookie: secureCookie,
	}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// AuthMiddleware wraps handlers to require an authenticated session. Anonymous
// requests are sent to the login page.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.sessionUser(r)
		if !ok {
			h.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handlers) sessionUser(r *http.Request) (*models.User, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	userID, ok := h.sessions.Lookup(cookie.Value)
	if !ok {
		return nil, false
	}
	user, err := h.store.GetUserByID(userID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// AuthViewModel holds data for the login and signup pages.
type AuthViewModel struct {
	Error    string
	Username string
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	h.render(w, "login.html", AuthViewModel{})
}

// Login handles the login form submission.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login.html", AuthViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.render(w, "login.html", AuthViewModel{Error: "Username and password are required", Username: username})
		return
	}

	user, ok := h.accounts.Authenticate(username, password)
	if !ok {
		h.render(w, "login.html", AuthViewModel{Error: "Invalid username or password", Username: username})
		return
	}

	h.startSession(w, r, user.ID, "login.html", AuthViewModel{Username: username})
}

// SignupForm renders the signup page.
func (h *Handlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	h.render(w, "signup.html", AuthViewModel{})
}

// Signup handles the signup form submission and logs the new user in.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "signup.html", AuthViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm")

	if password != confirm {
		h.render(w, "signup.html", AuthViewModel{Error: "Passwords do not match", Username: username})
		return
	}

	user, err := h.accounts.Register(username, password)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, storage.ErrUsernameTaken) {
			msg = "That username is already taken"
		}
		h.render(w, "signup.html", AuthViewModel{Error: msg, Username: username})
		return
	}

	h.startSession(w, r, user.ID, "signup.html", AuthViewModel{Username: username})
}

func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, userID int64, view string, vm AuthViewModel) {
	token, err := h.sessions.Create(userID)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		vm.Error = "An error occurred. Please try again."
		h.render(w, view, vm)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Logout ends the session and returns the client to the login page.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		h.sessions.Destroy(cookie.Value)
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) render(w http.ResponseWriter, viewName string, data any) {
	tmpl, err := template.ParseFiles(filepath.Join(h.templateDir, "base.html"), filepath.Join(h.templateDir, viewName))
	if err != nil {
		slog.Error("template parse failed", "view", viewName, "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		slog.Error("template execution failed", "view", viewName, "error", err)
	}
}
