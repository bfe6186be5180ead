package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// PopFlash takes the oldest flash from the request session, if any.
func PopFlash(ctx context.Context) *FlashMessage {
	if sess := SessionFromContext(ctx); sess != nil {
		return sess.PopFlash()
	}
	return nil
}

// AddFlash queues a flash on the request session, if any.
func AddFlash(ctx context.Context, kind, message string) {
	if sess := SessionFromContext(ctx); sess != nil {
		sess.AddFlash(FlashMessage{Kind: kind, Message: message})
	}
}
