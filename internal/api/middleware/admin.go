package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
)

// AdminPasswordHeader заголовок с паролем админки
const AdminPasswordHeader = "X-Admin-Password"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth пропускает запрос только с верным паролем админки
// Пустой настроенный пароль закрывает доступ полностью
func AdminAuth(password string, logger Logger) mux.MiddlewareFunc {
	expected := []byte(password)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(expected) == 0 {
				logger.Error("%s %s - Admin password is not configured", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "Unauthorized.")
				return
			}

			got := []byte(r.Header.Get(AdminPasswordHeader))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				logger.Warn("%s %s - Invalid admin password from %s", r.Method, r.URL.Path, r.RemoteAddr)
				handlers.RespondUnauthorized(w, "Unauthorized.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
