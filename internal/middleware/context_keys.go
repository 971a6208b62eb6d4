package middleware

import "context"

// contextKey is a private type for context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
)

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetCompanyIDFromCtx retrieves the authenticated user's company ID from the
// context. It returns the company ID and a boolean indicating if it was found.
func GetCompanyIDFromCtx(ctx context.Context) (string, bool) {
	companyID, ok := ctx.Value(companyIDKey).(string)
	return companyID, ok && companyID != ""
}
