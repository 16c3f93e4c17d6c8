package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/go-playground/validator/v10"
)

// isAPIRequest reports whether the response should be JSON rather than HTML.
func isAPIRequest(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPIRequest(r) {
		sendJSON(w, status, map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}

// statusFor maps workflow errors onto HTTP statuses: missing records are
// 404, slug and username collisions 409, policy denials 403, rejected
// input 400, everything else 500.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &verrs), errors.Is(err, services.ErrWeakPassword):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
