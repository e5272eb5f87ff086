package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/lex4u/BSM-SchedulingService/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const msgMissingUserID = "отсутствует заголовок X-User-ID"

// Auth извлекает ID пользователя из заголовка X-User-ID и кладёт его
// в контекст запроса. Запросы без валидного заголовка отклоняются.
// Проверка подлинности выполняется на API gateway, сюда заголовок
// приходит уже проверенным.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
