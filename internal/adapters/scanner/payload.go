package scanner

import (
	"strings"

	"qrattend/internal/domain"
)

// DefaultIDPrefix is the text badges carry in front of the Registration ID.
const DefaultIDPrefix = "ID: "

// ExtractID strips prefix from a decoded QR payload and returns the
// Registration ID. A prefix given with a trailing space also matches payloads
// written without it ("ID:42").
func ExtractID(payload, prefix string) (string, error) {
	s := strings.TrimSpace(payload)
	if prefix != "" {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			s = rest
		} else if p := strings.TrimSpace(prefix); p != "" {
			s = strings.TrimPrefix(s, p)
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.ErrInvalidPayload
	}
	return s, nil
}
