package lobby

import "errors"

// Sentinel kinds for lobby errors.
var (
	ErrFetch              = errors.New("lobby fetch failed")
	ErrUnexpectedResponse = errors.New("unexpected lobby response")
)
