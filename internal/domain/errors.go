package domain

import "errors"

// Domain errors.
var (
	ErrAuth           = errors.New("authentication failed")
	ErrRemote         = errors.New("spreadsheet request failed")
	ErrNotFound       = errors.New("registration id not in the database")
	ErrAlreadyMarked  = errors.New("attendance already marked")
	ErrSchema         = errors.New("sheet layout not supported")
	ErrInvalidPayload = errors.New("qr payload carries no registration id")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrAuth, "auth_failed"},
	{ErrRemote, "remote_failed"},
	{ErrNotFound, "not_found"},
	{ErrAlreadyMarked, "already_marked"},
	{ErrSchema, "bad_schema"},
	{ErrInvalidPayload, "invalid_payload"},
}

// Code returns the stable code of the domain error wrapped in err, or "" when
// err does not wrap one. Codes double as translation keys ("error.<code>").
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
