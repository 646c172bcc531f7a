package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// renderImage decodes content and scales it onto the fixed canvas. The
// source aspect ratio is preserved and the overflow cropped, so the
// canvas is always fully covered.
func renderImage(content []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("decode image: empty bounds")
	}

	scale := math.Max(
		float64(CanvasWidth)/float64(bounds.Dx()),
		float64(CanvasHeight)/float64(bounds.Dy()),
	)
	scaledW := int(math.Round(float64(bounds.Dx()) * scale))
	scaledH := int(math.Round(float64(bounds.Dy()) * scale))
	offsetX := (CanvasWidth - scaledW) / 2
	offsetY := (CanvasHeight - scaledH) / 2

	dst := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))

	// Scale clips to dst bounds, so the oversized target rect center-crops
	target := image.Rect(offsetX, offsetY, offsetX+scaledW, offsetY+scaledH)
	draw.CatmullRom.Scale(dst, target, src, bounds, draw.Src, nil)

	return encodePNG(dst)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
