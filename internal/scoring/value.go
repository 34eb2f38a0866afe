package scoring

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is one field of a score response. The endpoint may send either a
// number or a string, so the raw JSON is kept and converted to display text
// on demand.
type Value struct {
	raw     json.RawMessage
	present bool
}

// StringValue builds a Value holding a JSON string.
func StringValue(s string) Value {
	b, _ := json.Marshal(s)
	return Value{raw: b, present: true}
}

// UnmarshalJSON records the raw field. It is only called when the key is
// present in the payload, which is how an absent field is told apart from
// an explicit null.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	v.present = true
	return nil
}

// MarshalJSON writes the raw field back out, or null when absent.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Present reports whether the field appeared in the response.
func (v Value) Present() bool {
	return v.present
}

// Text renders the value the way a browser writes it into a text node:
// strings unquoted, numbers in shortest form, null as empty.
func (v Value) Text() string {
	if !v.present {
		return ""
	}

	raw := bytes.TrimSpace(v.raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	case 'n':
		return ""
	case 't', 'f':
		return string(raw)
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw)
		}
		return buf.String()
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return string(raw)
		}
		return formatNumber(f)
	}
}

// formatNumber prints f the way JavaScript's Number#toString does for the
// magnitudes a readability score can take.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
