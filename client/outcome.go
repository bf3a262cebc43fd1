package client

import "net/http"

// Outcome is the category a call falls into
type Outcome uint8

const (
	// Success is any 2xx response
	Success Outcome = iota
	// NoSession means no token was stored; no request was sent
	NoSession
	// Unauthorized is a 401: the token was rejected
	Unauthorized
	// Forbidden is a 403: the token is valid but lacks privileges
	Forbidden
	// Failed is any other non-2xx status
	Failed
	// TransportFailure means no HTTP response was received
	TransportFailure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NoSession:
		return "no_session"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case Failed:
		return "failed"
	case TransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Decision lists the effects the shell must perform for an outcome
type Decision struct {
	Outcome          Outcome
	ClearToken       bool
	Redirect         bool
	ShowAccessDenied bool
	ReturnResponse   bool
}

// Classify maps the token precondition and a status code to an Outcome.
// status is ignored when hasToken is false.
func Classify(hasToken bool, status int) Outcome {
	if !hasToken {
		return NoSession
	}

	switch {
	case status == http.StatusUnauthorized:
		return Unauthorized
	case status == http.StatusForbidden:
		return Forbidden
	case status >= 200 && status < 300:
		return Success
	default:
		return Failed
	}
}

// Decide returns the effects for an outcome.
// 401 clears and redirects, 403 only raises the indicator,
// everything else is handed back to the caller untouched.
func Decide(outcome Outcome) Decision {
	d := Decision{Outcome: outcome}
	switch outcome {
	case NoSession:
		d.Redirect = true
	case Unauthorized:
		d.ClearToken = true
		d.Redirect = true
	case Forbidden:
		d.ShowAccessDenied = true
		d.ReturnResponse = true
	case Success, Failed:
		d.ReturnResponse = true
	}

	return d
}
