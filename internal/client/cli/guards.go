package cli

import (
	"context"

	"github.com/paulikeo/mercadito/internal/client/session"
)

// Decision is the outcome of a route guard: stay on the current layout or
// move to the other one.
type Decision int

const (
	StayPublic Decision = iota
	GoPrivate
	StayPrivate
	GoPublic
)

type tokenVerifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// GuardPublic runs on entering the public layout and whenever the stored
// identity changes. A present token is re-verified against the server: valid
// promotes to the private layout, anything else (including a network error)
// clears the session and stays public. No token means no network call.
func GuardPublic(ctx context.Context, sess *session.Store, verifier tokenVerifier) Decision {
	if !sess.LoggedIn() {
		return StayPublic
	}
	if err := verifier.VerifyToken(ctx, sess.Token()); err != nil {
		sess.Clear()
		return StayPublic
	}
	return GoPrivate
}

// GuardPrivate runs on entering the private layout. It checks token
// presence only; a stale-but-present token is caught later when an API call
// fails with an authorization error, which surfaces as a notification, not
// a forced logout.
func GuardPrivate(sess *session.Store) Decision {
	if !sess.LoggedIn() {
		return GoPublic
	}
	return StayPrivate
}
