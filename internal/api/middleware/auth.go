// Package middleware содержит HTTP middleware сервиса
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/barberbook/booking-service/internal/api/handlers"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	isManagerKey contextKey = "isManager"

	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"

	roleManager = "manager"

	msgMissingUserID = "missing or malformed X-User-ID header"
)

// Auth извлекает пользователя из заголовков запроса.
// Аутентификацию выполняет API gateway, сервис доверяет заголовкам.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, isManagerKey, r.Header.Get(headerRole) == roleManager)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetIsManager возвращает признак менеджера из контекста
func GetIsManager(ctx context.Context) bool {
	isManager, _ := ctx.Value(isManagerKey).(bool)
	return isManager
}
