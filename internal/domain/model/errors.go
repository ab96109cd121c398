package model

import "errors"

// Sentinel kinds for record decoding errors.
var (
	ErrMalformedRecord = errors.New("malformed contest record")
	ErrStartDate       = errors.New("unparseable start date")
)
