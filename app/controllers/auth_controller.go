package controllers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"

	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	authService *services.AuthService
	templates   map[string]*template.Template
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, basePath string) *AuthController {
	return &AuthController{
		authService: authService,
		templates:   loadAuthTemplates(basePath),
	}
}

// loadAuthTemplates loads and parses all auth-related templates
func loadAuthTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["login"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/auth/login.html"),
	))
	templates["register"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/auth/register.html"),
	))
	return templates
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	var creds credentials
	if isAPIRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return creds, false
		}
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return creds, false
		}
		creds.Username = r.FormValue("username")
		creds.Password = r.FormValue("password")
	}
	return creds, true
}

// LoginForm displays the login form
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := struct{ Message string }{Message: r.URL.Query().Get("message")}
	if err := ac.templates["login"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Login verifies credentials and starts a session
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := readCredentials(w, r)
	if !ok {
		return
	}

	token, user, err := ac.authService.Login(creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			if isAPIRequest(r) {
				sendError(w, r, err.Error(), http.StatusUnauthorized)
			} else {
				http.Redirect(w, r, "/login?message=invalid+credentials", http.StatusSeeOther)
			}
			return
		}
		sendError(w, r, "Login failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if isAPIRequest(r) {
		sendJSON(w, http.StatusOK, map[string]interface{}{
			"token":    token,
			"username": user.Username,
		})
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Logout ends the current session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := ac.authService.Logout(cookie.Value); err != nil {
			sendError(w, r, "Logout failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:   middleware.SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if isAPIRequest(r) {
		w.WriteHeader(http.StatusNoContent)
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// RegisterForm displays the registration form
func (ac *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	data := struct{ Message string }{Message: r.URL.Query().Get("message")}
	if err := ac.templates["register"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Register creates a new account. Self-registration never grants staff;
// staff accounts come from the adduser CLI command.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	creds, ok := readCredentials(w, r)
	if !ok {
		return
	}

	user, err := ac.authService.Register(creds.Username, creds.Password, false)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) && !isAPIRequest(r) {
			http.Redirect(w, r, "/register?message=username+taken", http.StatusSeeOther)
			return
		}
		sendError(w, r, err.Error(), statusFor(err))
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, http.StatusCreated, map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
		})
	} else {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
