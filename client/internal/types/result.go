package types

import (
	"bytes"
	"encoding/json"
)

// ------------------------------
// Pass-through Body
// ------------------------------

// Result is the body of a successful response, kept byte-for-byte as the
// backend sent it. It marshals back to the same JSON unchanged.
type Result []byte

// MarshalJSON returns the stored body unchanged.
func (r Result) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of b.
func (r *Result) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

// Decode unmarshals the body into v.
func (r Result) Decode(v any) error {
	return json.Unmarshal(r, v)
}

// String returns the raw body.
func (r Result) String() string { return string(r) }

// Indent returns the body pretty-printed with two-space indentation.
func (r Result) Indent() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imageIDKeys lists where backends put the image handle, most specific first.
var imageIDKeys = []string{"image_id", "imageId", "id"}

// ImageID extracts the image handle from an upload or process body. The
// handle may be a JSON string or a JSON number; numbers are returned in their
// literal form.
func (r Result) ImageID() (string, bool) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(r, &envelope); err != nil {
		return "", false
	}
	for _, key := range imageIDKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s, true
		}
		var n json.Number
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&n); err == nil && n != "" {
			return n.String(), true
		}
	}
	return "", false
}
