package middleware

import (
	"billed/internal/logger"
	"billed/internal/repository"
	"billed/internal/reqctx"
	"billed/internal/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

func JWTAuth(secret string, repo repository.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				http.Error(w, "Отсутствует access token", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := utils.ParseToken(secret, tokenString)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				http.Error(w, "Неверный или просроченный токен", http.StatusUnauthorized)
				return
			}

			// 🔹 Проверка блоклиста
			blacklisted, err := repo.IsAccessTokenBlacklisted(r.Context(), tokenString)
			if err != nil {
				logger.WithCtx(r.Context()).Error("JWTAuth: ошибка проверки блоклиста", zap.Error(err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if blacklisted {
				logger.WithCtx(r.Context()).Warn("JWTAuth: токен найден в блоклисте")
				http.Error(w, "Неверный или просроченный токен", http.StatusUnauthorized)
				return
			}

			ctx := reqctx.WithUserID(r.Context(), claims.UserID)
			ctx = reqctx.WithEmail(ctx, claims.Email)
			ctx = reqctx.WithUserType(ctx, claims.Type)
			ctx = withToken(ctx, tokenString, claims.ExpiresAt.Time)

			logger.WithCtx(ctx).Debug("JWTAuth: токен валиден",
				zap.String("email", claims.Email), zap.String("type", claims.Type))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
