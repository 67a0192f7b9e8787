// Package middleware промежуточные обработчики HTTP: аутентификация
// админки и сбор метрик запросов
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Fuzuri/CleanIT/internal/api/handlers"
)

const msgUnauthorized = "authentication required"

// BasicAuth закрывает маршруты HTTP Basic аутентификацией.
// Сравнение выполняется за константное время, чтобы по времени ответа
// нельзя было подбирать учетные данные посимвольно.
func BasicAuth(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !constantTimeEquals(user, username) || !constantTimeEquals(pass, password) {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func constantTimeEquals(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
