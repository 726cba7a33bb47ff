package middleware

import (
	"billed/internal/models"
	"billed/internal/reqctx"
	"context"
	"time"
)

type ctxKey string

const (
	// ЭТОТ ФЛАГ будем ставить админам, чтобы пропускать все проверки
	ContextSkipGuards ctxKey = "skip_guards"

	contextToken    ctxKey = "access_token"
	contextTokenExp ctxKey = "access_token_exp"
)

func WithSkipGuards(ctx context.Context) context.Context {
	return context.WithValue(ctx, ContextSkipGuards, true)
}

func SkipGuards(ctx context.Context) bool {
	v := ctx.Value(ContextSkipGuards)
	b, _ := v.(bool)
	return b
}

func withToken(ctx context.Context, token string, exp time.Time) context.Context {
	ctx = context.WithValue(ctx, contextToken, token)
	return context.WithValue(ctx, contextTokenExp, exp)
}

// TokenFromContext — исходный access-токен и его exp (нужно для logout).
func TokenFromContext(ctx context.Context) (string, time.Time, bool) {
	tok, ok := ctx.Value(contextToken).(string)
	if !ok {
		return "", time.Time{}, false
	}
	exp, _ := ctx.Value(contextTokenExp).(time.Time)
	return tok, exp, true
}

// ActorFromContext собирает models.Actor из того, что положил JWTAuth.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	id, ok1 := reqctx.GetUserID(ctx)
	email, ok2 := reqctx.GetEmail(ctx)
	typ, ok3 := reqctx.GetUserType(ctx)
	if !ok1 || !ok2 || !ok3 {
		return models.Actor{}, false
	}
	return models.Actor{UserID: id, Email: email, Type: typ}, true
}
