// Package handlers содержит общие helpers для HTTP-обработчиков
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyBody возвращается при пустом теле запроса
var ErrEmptyBody = errors.New("handlers: empty request body")

const maxBodySize = 1 << 20 // 1 MB

// errorResponse стандартное тело ошибки
type errorResponse struct {
	Error string `json:"error"`
}

// DecodeJSON декодирует тело запроса в v.
// Неизвестные поля считаются ошибкой клиента.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("handlers: failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет v как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, errorResponse{Error: msg})
}

// RespondBadRequest пишет ошибку 400
func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusBadRequest, msg)
}

// RespondUnauthorized пишет ошибку 401
func RespondUnauthorized(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusUnauthorized, msg)
}

// RespondForbidden пишет ошибку 403
func RespondForbidden(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusForbidden, msg)
}

// RespondNotFound пишет ошибку 404
func RespondNotFound(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusNotFound, msg)
}

// RespondInternalError пишет ошибку 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "internal server error")
}
