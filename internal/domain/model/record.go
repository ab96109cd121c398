package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"
)

// doubleUpAttr is the attribute map key marking double-up payouts.
const doubleUpAttr = "IsDoubleUp"

// recordSchema lists the fields every lobby contest record must carry.
// "a" may be null for free contests.
const recordSchema = `{
	"type": "object",
	"required": ["id", "n", "po", "m", "a", "ec", "mec", "attr", "sd", "dg"],
	"properties": {
		"id":   {"type": ["string", "integer"]},
		"n":    {"type": "string"},
		"po":   {"type": "number"},
		"m":    {"type": "integer", "minimum": 0},
		"a":    {"type": ["number", "null"], "minimum": 0},
		"ec":   {"type": "integer", "minimum": 0},
		"mec":  {"type": "integer", "minimum": 0},
		"attr": {"type": "object"},
		"sd":   {"type": "string"},
		"dg":   {"type": ["string", "integer"]}
	}
}`

var (
	startDigits = regexp.MustCompile(`\d+`)
	schema      = mustCompileSchema(recordSchema)
)

func mustCompileSchema(s string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("model: compile record schema: %v", err))
	}
	return compiled
}

// rawContest mirrors the lobby's abbreviated record keys.
type rawContest struct {
	ID            flexID          `json:"id"`
	Name          string          `json:"n"`
	Payout        decimal.Decimal `json:"po"`
	MaxEntries    int             `json:"m"`
	Fee           decimal.Decimal `json:"a"`
	EntryCount    int             `json:"ec"`
	MaxEntryCount int             `json:"mec"`
	Attr          map[string]any  `json:"attr"`
	StartDate     string          `json:"sd"`
	DraftGroup    flexID          `json:"dg"`
}

// flexID accepts identifiers encoded either as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// ParseStartDate decodes a start-date token such as "/Date(1449619200000)/".
// The first run of digits is read as milliseconds since the Unix epoch and
// the result is expressed in loc.
func ParseStartDate(token string, loc *time.Location) (time.Time, error) {
	digits := startDigits.FindString(token)
	if digits == "" {
		return time.Time{}, fmt.Errorf("%w: no digits in %q", ErrStartDate, token)
	}
	ms, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrStartDate, token, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc), nil
}

// ParseRecord validates one raw lobby record and builds a Contest from it.
func ParseRecord(raw json.RawMessage, loc *time.Location) (Contest, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Contest{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return Contest{}, fmt.Errorf("%w: %s", ErrMalformedRecord, strings.Join(errs, "; "))
	}

	var rc rawContest
	if err := json.Unmarshal(raw, &rc); err != nil {
		return Contest{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	start, err := ParseStartDate(rc.StartDate, loc)
	if err != nil {
		return Contest{}, err
	}

	doubleUp, err := isDoubleUp(rc.Attr)
	if err != nil {
		return Contest{}, err
	}

	return Contest{
		ID:            string(rc.ID),
		Name:          rc.Name,
		DraftGroup:    string(rc.DraftGroup),
		StartDt:       start,
		TotalPrizes:   rc.Payout,
		Entries:       rc.MaxEntries,
		EntryFee:      rc.Fee,
		EntryCount:    rc.EntryCount,
		MaxEntryCount: rc.MaxEntryCount,
		IsDoubleUp:    doubleUp,
	}, nil
}

// ParseRecords decodes every record, stopping at the first failure.
func ParseRecords(raws []json.RawMessage, loc *time.Location) ([]Contest, error) {
	contests := make([]Contest, 0, len(raws))
	for i, raw := range raws {
		c, err := ParseRecord(raw, loc)
		if err != nil {
			return nil, fmt.Errorf("contest record %d: %w", i, err)
		}
		contests = append(contests, c)
	}
	return contests, nil
}

// isDoubleUp resolves the double-up flag. The lobby sends it either as a
// JSON boolean or as a boolean string.
func isDoubleUp(attr map[string]any) (bool, error) {
	v, ok := attr[doubleUpAttr]
	if !ok || v == nil {
		return false, nil
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, fmt.Errorf("%w: attr.%s=%q", ErrMalformedRecord, doubleUpAttr, t)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: attr.%s has type %T", ErrMalformedRecord, doubleUpAttr, v)
	}
}
