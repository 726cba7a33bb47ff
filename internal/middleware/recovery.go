package middleware

import (
	"net/http"
	"runtime/debug"

	"billed/internal/logger"
	helpers "billed/internal/utils/helpres"

	"go.uber.org/zap"
)

// Recoverer превращает панику хендлера в 500 с обычным конвертом ошибки.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.WithCtx(r.Context()).Error("Паника в хендлере",
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			helpers.Error(w, http.StatusInternalServerError, "Ошибка сервера")
		}()
		next.ServeHTTP(w, r)
	})
}
