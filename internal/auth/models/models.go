package models

import "net/url"

// Profile represents the signed-in user as reported by the provider
type Profile struct {
	Username string
	Email    string
	Name     string
}

// CallbackParams are the query values the provider sends to the callback
// route. A well-formed callback carries either Code or Error, never both.
type CallbackParams struct {
	Code             string
	Error            string
	ErrorDescription string
}

// ParseCallbackParams extracts the callback parameters from a query string.
func ParseCallbackParams(q url.Values) CallbackParams {
	return CallbackParams{
		Code:             q.Get("code"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	}
}

// Denied reports whether the provider declined the authorization request.
func (p CallbackParams) Denied() bool {
	return p.Error != ""
}
