package middleware

import (
	"billed/internal/models"
	"billed/internal/reqctx"
	"billed/internal/utils"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBlacklist struct {
	tokens map[string]bool
	err    error
}

func (s *stubBlacklist) IsAccessTokenBlacklisted(_ context.Context, token string) (bool, error) {
	return s.tokens[token], s.err
}

func actorHandler(got *models.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, ok := ActorFromContext(r.Context())
		if ok {
			*got = a
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth(t *testing.T) {
	tok, err := utils.GenerateToken("secret", 5, "a@a", models.UserTypeEmployee, time.Hour)
	require.NoError(t, err)

	var got models.Actor
	h := JWTAuth("secret", &stubBlacklist{})(actorHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Actor{UserID: 5, Email: "a@a", Type: models.UserTypeEmployee}, got)
}

func TestJWTAuth_Rejects(t *testing.T) {
	good, err := utils.GenerateToken("secret", 5, "a@a", models.UserTypeEmployee, time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateToken("secret", 5, "a@a", models.UserTypeEmployee, -time.Hour)
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		bl     *stubBlacklist
		code   int
	}{
		"no header":   {"", &stubBlacklist{}, http.StatusUnauthorized},
		"not bearer":  {"Basic abc", &stubBlacklist{}, http.StatusUnauthorized},
		"garbage":     {"Bearer abc", &stubBlacklist{}, http.StatusUnauthorized},
		"expired":     {"Bearer " + expired, &stubBlacklist{}, http.StatusUnauthorized},
		"blacklisted": {"Bearer " + good, &stubBlacklist{tokens: map[string]bool{good: true}}, http.StatusUnauthorized},
		"db error":    {"Bearer " + good, &stubBlacklist{err: errors.New("db down")}, http.StatusInternalServerError},
	}
	for name, c := range cases {
		var got models.Actor
		h := JWTAuth("secret", c.bl)(actorHandler(&got))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, c.code, rec.Code, name)
		assert.Zero(t, got, name)
	}
}

func TestAnyType_AdminFastLane(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := AdminFastLane(OnlyType(models.UserTypeEmployee)(ok))

	for userType, want := range map[string]int{
		models.UserTypeEmployee: http.StatusOK,
		models.UserTypeAdmin:    http.StatusOK,
		"Guest":                 http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(reqctx.WithUserType(req.Context(), userType))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, userType)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = reqctx.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc", seen)
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
