// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"encoding/json"
	"io"
	"net/http"
)

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// badRequest create an http bad request error.
func badRequest(cause error) error {
	return &httpError{cause: cause, status: http.StatusBadRequest}
}

// notFound create an http not found error.
func notFound(cause error) error {
	return &httpError{cause: cause, status: http.StatusNotFound}
}

// forbidden create an http forbidden error.
func forbidden(cause error) error {
	return &httpError{cause: cause, status: http.StatusForbidden}
}

// handlerFunc like http.HandlerFunc, but it returns an error.
// If the returned error is httpError type, httpError.status will be responded,
// otherwise http.StatusInternalServerError responded.
type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrapHandlerFunc convert handlerFunc to http.HandlerFunc.
func wrapHandlerFunc(f handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err != nil {
			if he, ok := err.(*httpError); ok {
				if he.cause != nil {
					http.Error(w, he.cause.Error(), he.status)
				} else {
					w.WriteHeader(he.status)
				}
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

const jsonContentType = "application/json; charset=utf-8"

// parseJSON parse a JSON object using strict mode.
func parseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// writeJSON response an object in JSON encoding.
func writeJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", jsonContentType)
	return json.NewEncoder(w).Encode(obj)
}
