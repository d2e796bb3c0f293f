package country

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when the upstream payload is empty or JSON null.
	ErrNoData = errors.New("no country data")
	// ErrMalformed is returned when the upstream payload is not a JSON array of countries.
	ErrMalformed = errors.New("malformed country data")
)

// Decode parses an upstream response body into country records.
// An empty array decodes to an empty, non-nil slice.
func Decode(body []byte) ([]Country, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrNoData
	}

	var countries []Country
	if err := json.Unmarshal(body, &countries); err != nil {
		return nil, fmt.Errorf("decoding countries: %w: %w", ErrMalformed, err)
	}

	// "null" unmarshals into a nil slice without error.
	if countries == nil {
		return nil, ErrNoData
	}

	return countries, nil
}
