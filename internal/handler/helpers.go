// Package handler exposes the services as JSON over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/dishly/internal/apperr"
	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err to its status code. Internal failures are logged and
// replaced by a generic message.
func writeError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	code := apperr.CodeOf(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, status, errorBody{Error: "internal server error", Code: string(apperr.CodeInternal)})
		return
	}

	var appErr *apperr.Error
	errors.As(err, &appErr)
	writeJSON(w, status, errorBody{Error: appErr.Message, Code: string(code), Details: appErr.Details})
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid JSON")
	}
	return validation.Struct(dst)
}

// caller returns the authenticated caller. Routes behind RequireAuth always
// have one.
func caller(r *http.Request) (auth.AuthContext, error) {
	ac, ok := auth.FromContext(r.Context())
	if !ok || ac.UserID == "" {
		return auth.AuthContext{}, apperr.Unauthorized("authentication required")
	}
	return ac, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.Validationf("invalid %s", name)
	}
	return n, nil
}
