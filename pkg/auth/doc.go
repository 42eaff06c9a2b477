// Package auth implements the Google OAuth 2.0 sign-in flow.
//
// The HTTP layer owns the state cookie: it calls NewState, stores the value in
// a short-lived signed cookie, redirects to AuthURL(state), and on callback
// checks the returned state with VerifyState before calling Exchange.
package auth
