package api

import "context"

type contextKey string

const emailContextKey contextKey = "auth_email"

// EmailFromContext extracts the authenticated email from the context
func EmailFromContext(ctx context.Context) string {
	email, ok := ctx.Value(emailContextKey).(string)
	if !ok {
		return ""
	}
	return email
}

// ContextWithEmail adds the authenticated email to the context
func ContextWithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailContextKey, email)
}
