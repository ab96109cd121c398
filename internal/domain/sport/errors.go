package sport

import "errors"

// Sentinel kinds for sport errors.
var (
	ErrUnknownSport     = errors.New("unknown sport")
	ErrUnsupportedSport = errors.New("sport has no schedule profile")
)
