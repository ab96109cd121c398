package lobby

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeContests extracts the raw contest records from a lobby response.
// The lobby answers either with a bare array of records or with an object
// carrying them under "Contests".
func DecodeContests(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedResponse)
	}

	switch data[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		}
		return records, nil
	case '{':
		var envelope struct {
			Contests *[]json.RawMessage `json:"Contests"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		}
		if envelope.Contests == nil {
			return nil, fmt.Errorf("%w: object without Contests", ErrUnexpectedResponse)
		}
		return *envelope.Contests, nil
	default:
		return nil, fmt.Errorf("%w: neither a list nor an object", ErrUnexpectedResponse)
	}
}
