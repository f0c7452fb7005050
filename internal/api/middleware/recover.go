// recover.go — глобальная граница ошибок HTTP-сервера.
// Перехватывает панику из любого обработчика и возвращает
// стандартный JSON-ответ 500 вместо обрыва соединения.
package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "github.com/bigkaa/gorefbook/internal/api/errors"
)

// Recoverer возвращает middleware, перехватывающий панику обработчиков.
// Паника логируется со стеком, клиенту уходит общий INTERNAL_ERROR
// без деталей сбоя.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						// Стандартный способ прервать обработчик — пробрасываем дальше
						panic(rec)
					}

					logger.Error("Паника в HTTP-обработчике",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)

					apierrors.InternalError(w, "Внутренняя ошибка сервера")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
