// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"learnpress/internal/apperr"
	"learnpress/internal/store"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Message string      `json:"message"`
	Errors  fieldErrors `json:"errors,omitempty"`
}

// messageBody acknowledges deletes and reorders.
type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, messageBody{Message: msg})
}

func writeValidation(w http.ResponseWriter, errs fieldErrors) {
	writeJSON(w, http.StatusBadRequest, errorBody{Message: "Validation failed", Errors: errs})
}

// writeError maps err onto a status and body. NotFound and Validation errors
// carry their own message; anything else is reported as a generic write or
// server failure and logged with the underlying cause.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	switch {
	case errors.Is(err, errBadBody):
		writeJSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
		return
	case status < http.StatusInternalServerError:
		writeJSON(w, status, errorBody{Message: apperr.Message(err, http.StatusText(status))})
		return
	}

	kv := []any{"method", r.Method, "path", r.URL.Path, "error", err}
	if store.IsUniqueViolation(err) {
		// Slug collisions are caller mistakes; keep them out of error alerts.
		a.log.Warn("write rejected by constraint", kv...)
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Could not save changes"})
		return
	}
	a.log.Error("request failed", kv...)
	writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Internal server error"})
}
