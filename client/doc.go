// Package client performs calls against the Konnect admin API on behalf of
// a session.
//
// Every call is checked for a session token before anything is sent, carries
// the token as a bearer credential, and is classified into an Outcome. The
// rules that map a status code to an Outcome and an Outcome to side effects
// (Classify, Decide, MergeHeaders) are pure functions. Client is the shell
// that performs the network call and the effects: clearing the token,
// redirecting to login, raising the access-denied indicator.
//
// HTTP statuses never produce a Go error. Only request construction and
// transport faults do; see IsTransport.
package client
