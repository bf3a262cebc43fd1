package client

import (
	"net/http"
	"net/textproto"
	"sort"
)

// Header names set by the client
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderRequestID     = "X-Request-ID"
)

const contentTypeJSON = "application/json"

// MergeHeaders builds the outgoing header set: JSON defaults first, then the
// caller's headers, then the bearer credential. The Authorization value is
// always derived from token, whatever the caller supplied.
func MergeHeaders(token string, caller http.Header) http.Header {
	merged := http.Header{}
	merged.Set(HeaderContentType, contentTypeJSON)
	merged.Set(HeaderAccept, contentTypeJSON)

	// Caller keys may differ only in case; every spelling of a header
	// replaces the default and all of their values are kept
	keys := make([]string, 0, len(caller))
	for key := range caller {
		keys = append(keys, key)
		merged.Del(textproto.CanonicalMIMEHeaderKey(key))
	}
	sort.Strings(keys)
	for _, key := range keys {
		canonical := textproto.CanonicalMIMEHeaderKey(key)
		for _, value := range caller[key] {
			merged.Add(canonical, value)
		}
	}

	merged.Set(HeaderAuthorization, "Bearer "+token)
	return merged
}
