package middleware

import "context"

type userKey struct{}

// UserCtx is the identity a verified user token asserts.
type UserCtx struct {
	UserID string
	Email  string
}

func WithUser(ctx context.Context, u UserCtx) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func FromCtx(ctx context.Context) (UserCtx, bool) {
	u, ok := ctx.Value(userKey{}).(UserCtx)
	return u, ok
}

// UserID returns the acting user id, empty outside UserAuth.
func UserID(ctx context.Context) string {
	u, _ := FromCtx(ctx)
	return u.UserID
}
