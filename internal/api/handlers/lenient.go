package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// truthy decodes any JSON value by truthiness. false, 0, "" and null are
// false and everything else is true.
type truthy bool

func (b *truthy) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*b = false
	case bool:
		*b = truthy(t)
	case float64:
		*b = truthy(t != 0 && !math.IsNaN(t))
	case string:
		*b = t != ""
	default:
		*b = true
	}
	return nil
}

// wholeNumber accepts a JSON integer or a string holding one.
type wholeNumber int

func (n *wholeNumber) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("not a whole number: %s", data)
	}
	*n = wholeNumber(f)
	return nil
}
