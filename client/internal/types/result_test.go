package types

import (
	"encoding/json"
	"testing"
)

func TestResult_MarshalIsIdentity(t *testing.T) {
	t.Parallel()
	body := `{"success": true,  "image_id":"abc", "nested": {"k": [1, 2.50, "x"]}}`
	r := Result(body)
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// json.Marshal compacts RawMessage-like output, so compare semantically
	// and check the original bytes are untouched.
	if r.String() != body {
		t.Fatalf("body mutated: %s", r)
	}
	var a, b any
	_ = json.Unmarshal([]byte(body), &a)
	_ = json.Unmarshal(out, &b)
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	if string(ab) != string(bb) {
		t.Fatalf("round trip differs: %s vs %s", ab, bb)
	}
}

func TestResult_EmptyMarshalsNull(t *testing.T) {
	t.Parallel()
	out, err := json.Marshal(Result(nil))
	if err != nil || string(out) != "null" {
		t.Fatalf("got %s, %v", out, err)
	}
}

func TestResult_ImageID(t *testing.T) {
	t.Parallel()
	cases := []struct {
		body string
		want string
		ok   bool
	}{
		{`{"image_id":"3ea7a8b3"}`, "3ea7a8b3", true},
		{`{"imageId":42}`, "42", true},
		{`{"id":"7"}`, "7", true},
		{`{"image_id":"", "id":9}`, "9", true},
		{`{"filename":"a.png"}`, "", false},
		{`[1,2]`, "", false},
		{`{"image_id":null}`, "", false},
		{`{"image_id":null, "id":"5"}`, "5", true},
	}
	for _, c := range cases {
		got, ok := Result(c.body).ImageID()
		if got != c.want || ok != c.ok {
			t.Fatalf("ImageID(%s) = %q,%v want %q,%v", c.body, got, ok, c.want, c.ok)
		}
	}
}

func TestResult_DecodeUpload(t *testing.T) {
	t.Parallel()
	r := Result(`{"success":true,"image_id":"u1","filename":"knot.png","dimensions":{"width":640,"height":480},"preview":"data:image/png;base64,iVBORw=="}`)
	var up UploadResponse
	if err := r.Decode(&up); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if up.ImageID != "u1" || up.Dimensions.Width != 640 || up.Preview.Extension() != "png" {
		t.Fatalf("unexpected upload view: %+v", up)
	}
}

func TestResult_Indent(t *testing.T) {
	t.Parallel()
	out, err := Result(`{"a":1}`).Indent()
	if err != nil {
		t.Fatalf("indent: %v", err)
	}
	if string(out) != "{\n  \"a\": 1\n}" {
		t.Fatalf("unexpected indent: %q", out)
	}
	if _, err := Result(`{bad`).Indent(); err == nil {
		t.Fatal("expected indent error for invalid json")
	}
}
