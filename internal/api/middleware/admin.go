package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
)

const adminKey ctxKey = iota + 1

// Admin пропускает только пользователей из списка администраторов
// Должен стоять после Auth
func Admin(adminIDs []int64) mux.MiddlewareFunc {
	allowed := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		allowed[id] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
				return
			}

			if _, ok := allowed[userID]; !ok {
				handlers.RespondForbidden(w, "доступ только для администраторов")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsAdminFromContext сообщает, что запрос прошел через Admin middleware
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(adminKey).(bool)
	return ok && isAdmin
}
