package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Timestamp keeps a mirror timestamp as text.
//
// The mirror sends RFC 3339 strings, but older records carry unix seconds
// and absent values arrive as null. Everything is normalised to a string;
// an empty string means absent. Parsing for display is left to the dates
// package.
type Timestamp string

// UnmarshalJSON accepts a string, a unix timestamp in seconds, or null.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ts = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*ts = Timestamp(s)
		return nil
	}

	secs, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("unable to parse timestamp: %s", data)
	}
	*ts = Timestamp(time.Unix(secs, 0).UTC().Format(time.RFC3339))
	return nil
}
