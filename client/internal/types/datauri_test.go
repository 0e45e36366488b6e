package types

import (
	"encoding/base64"
	"testing"
)

func TestDataURI_Decode(t *testing.T) {
	t.Parallel()
	payload := []byte{0xff, 0xd8, 0xff, 0xe0}
	d := DataURI("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload))
	mt, data, err := d.Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mt != "image/jpeg" || string(data) != string(payload) {
		t.Fatalf("unexpected decode: %s %v", mt, data)
	}
	if d.Extension() != "jpg" {
		t.Fatalf("unexpected extension %s", d.Extension())
	}
}

func TestDataURI_DecodeErrors(t *testing.T) {
	t.Parallel()
	for _, in := range []DataURI{
		"",
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,!!!",
	} {
		if _, _, err := in.Decode(); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestDataURI_Extension(t *testing.T) {
	t.Parallel()
	cases := map[DataURI]string{
		"data:image/png;base64,AA":  "png",
		"data:image/bmp;base64,AA":  "bmp",
		"data:image/tiff;base64,AA": "tiff",
		"data:text/plain;base64,AA": "bin",
	}
	for in, want := range cases {
		if got := in.Extension(); got != want {
			t.Errorf("%s: got %s want %s", in, got, want)
		}
	}
	if !DataURI("").Empty() {
		t.Error("expected empty")
	}
}
