package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-BarbershopService/internal/api/handlers"
)

const adminHeader = "X-Admin-ID"

// Auth проверяет наличие заголовка X-Admin-ID на админских маршрутах
// Идентификацию выполняет API gateway, здесь только проверяется,
// что запрос пришел от авторизованного администратора
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(adminHeader) == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-Admin-ID")
			return
		}
		next.ServeHTTP(w, r)
	})
}
