package queue

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// present reports whether a JSON member was supplied with a non-null value.
func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// parseTableNo accepts a JSON number or a numeric string holding a positive
// whole number, so "5", 5 and 5.0 all name table 5.
func parseTableNo(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, &ValidationError{msgBadTableNo}
	}

	var f float64
	var err error
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, &ValidationError{msgBadTableNo}
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, &ValidationError{msgBadTableNo}
	}
	return int(f), nil
}

// parseSongID keeps strings as-is and numbers in their literal form.
func parseSongID(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", &ValidationError{msgFieldsRequired}
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", &ValidationError{msgFieldsRequired}
		}
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", &ValidationError{msgFieldsRequired}
	}
}
