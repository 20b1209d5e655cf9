package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	IsAdminKey contextKey = "is_admin"
	TokenKey   contextKey = "token"
)

// Identity is the authenticated caller passed explicitly into every core
// operation. Core code never reads ambient session state.
type Identity struct {
	UserID  uuid.UUID
	IsAdmin bool
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return Identity{}, false
	}

	isAdmin, _ := ctx.Value(IsAdminKey).(bool)
	return Identity{UserID: userID, IsAdmin: isAdmin}, true
}

func SetUserContext(ctx context.Context, userID uuid.UUID, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, IsAdminKey, isAdmin)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
