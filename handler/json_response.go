package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON renders v with status 200.
func JSON(v any) Response {
	return jsonResponse{status: http.StatusOK, body: v}
}

// Created renders v with status 201.
func Created(v any) Response {
	return jsonResponse{status: http.StatusCreated, body: v}
}

// failure carries an error returned by a handler to the ErrorHandler.
type failure struct{ err error }

func (f failure) Render(w http.ResponseWriter, r *http.Request) error {
	return AsError(f.err, nil).Render(w, r)
}

// Fail returns a Response that hands err to the configured ErrorHandler.
func Fail(err error) Response {
	return failure{err: err}
}
