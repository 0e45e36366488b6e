package mockbackend

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

var (
	demoOnce sync.Once
	demoPNG  []byte
)

// DemoBoardPNG returns a 320x200 light board with two dark knots, one large
// enough to classify the board as defective.
func DemoBoardPNG() []byte {
	demoOnce.Do(func() {
		demoPNG = renderBoard(320, 200, []knot{{x: 90, y: 100, r: 28}, {x: 240, y: 60, r: 11}})
	})
	return demoPNG
}

type knot struct{ x, y, r int }

func renderBoard(w, h int, knots []knot) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		// faint horizontal grain
		shade := uint8(200 + (y/6%2)*12)
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: shade, G: shade - 30, B: shade - 70, A: 255})
		}
	}
	for _, k := range knots {
		for y := k.y - k.r; y <= k.y+k.r; y++ {
			for x := k.x - k.r; x <= k.x+k.r; x++ {
				dx, dy := x-k.x, y-k.y
				if dx*dx+dy*dy <= k.r*k.r {
					img.SetNRGBA(x, y, color.NRGBA{R: 60, G: 35, B: 15, A: 255})
				}
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
