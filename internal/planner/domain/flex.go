package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FlexInt decodes from a JSON number, a numeric string such as "1,20,000" or
// "$45000", or null. Strings holding several numbers ("24-28 weeks") yield
// the first one. Fractions are truncated.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	v, err := decodeFlexNumber(b)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt64 {
		return fmt.Errorf("flex int: %s out of range", b)
	}
	*f = FlexInt(int64(v))
	return nil
}

// FlexFloat is the float64 counterpart of FlexInt.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	v, err := decodeFlexNumber(b)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func decodeFlexNumber(b []byte) (float64, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return 0, nil
	}

	if b[0] != '"' {
		var n float64
		if err := json.Unmarshal(b, &n); err != nil {
			return 0, fmt.Errorf("flex number: %w", err)
		}
		return n, nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return 0, fmt.Errorf("flex number: %w", err)
	}
	m := firstNumber.FindString(s)
	if m == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("flex number: cannot read %q", s)
	}
	return n, nil
}

// Digits may carry Indian or western thousands separators.
var firstNumber = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// FlexText decodes from a JSON string, a number, or null and keeps the text
// as written.
type FlexText string

func (f *FlexText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("flex text: %w", err)
		}
		*f = FlexText(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flex text: %w", err)
	}
	*f = FlexText(n.String())
	return nil
}

// StringList decodes from a single string, an array of strings, or an array
// of objects; objects contribute their most descriptive text field.
type StringList []string

var stringListKeys = []string{"description", "risk", "optimization", "title", "text", "name"}

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("string list: %w", err)
	}

	out := make(StringList, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}

		var obj map[string]interface{}
		if err := json.Unmarshal(item, &obj); err == nil {
			if text := pickText(obj); text != "" {
				out = append(out, text)
				continue
			}
		}
		out = append(out, string(item))
	}
	*l = out
	return nil
}

func pickText(obj map[string]interface{}) string {
	for _, k := range stringListKeys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
