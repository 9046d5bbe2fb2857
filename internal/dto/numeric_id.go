package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var errNumericID = errors.New("must be a numeric id")

// NumericID accepts both 5 and "5". HTML select values arrive as strings.
// Values must fit the 32-bit id columns.
type NumericID int64

// UnmarshalJSON implements json.Unmarshaler
func (id *NumericID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errNumericID
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseInt(string(data), 10, 32)
	if err != nil {
		return errNumericID
	}
	*id = NumericID(v)
	return nil
}
