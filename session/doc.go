// Package session holds the administrator's bearer token.
//
// A Session is created once by the application's top-level code and handed
// to every component that issues API calls. The token itself lives in a
// Store; presence of a token is the only authentication signal the console
// has. Login hands a token over from an external sign-in flow, Logout and
// Invalidate remove it.
package session
