package scanner

import "errors"

// ErrNoFrame is returned by Source.Grab when the camera yielded nothing.
var ErrNoFrame = errors.New("no frame captured")

// Source is a camera with a preview window.
type Source interface {
	// Grab captures one frame, tries to decode a QR code in it and shows
	// the frame. It returns ("", nil) when the frame holds no QR code.
	Grab() (string, error)
	// PollKey returns the key pressed in the preview window, or -1.
	PollKey() int
	Close() error
}
