package thumbnail

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jefefefef/Paperplay/internal/domain/models/library"
)

// Placeholder palette. Colors and layout are fixed so a given kind always
// renders byte-identical bytes.
var (
	placeholderBackground = color.RGBA{R: 0xEC, G: 0xEC, B: 0xEC, A: 0xFF}
	placeholderPage       = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	placeholderAccents = map[library.FileKind]color.RGBA{
		library.KindImage: {R: 0x1A, G: 0x73, B: 0xE8, A: 0xFF},
		library.KindPDF:   {R: 0xD9, G: 0x30, B: 0x25, A: 0xFF},
		library.KindOther: {R: 0x5F, G: 0x63, B: 0x68, A: 0xFF},
	}

	placeholderLabels = map[library.FileKind]string{
		library.KindImage: "IMG",
		library.KindPDF:   "PDF",
		library.KindOther: "FILE",
	}
)

// renderPlaceholder draws the static preview used when a file cannot be
// rendered directly: a flat page with a kind-colored band and label.
func renderPlaceholder(kind library.FileKind) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))

	fillRect(img, img.Bounds(), placeholderBackground)

	// Inner page with a margin on every side
	page := image.Rect(14, 14, CanvasWidth-14, CanvasHeight-14)
	fillRect(img, page, placeholderPage)

	accent := placeholderAccents[kind]
	band := image.Rect(page.Min.X, 200, page.Max.X, 236)
	fillRect(img, band, accent)

	label := placeholderLabels[kind]
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(placeholderPage),
		Face: basicfont.Face7x13,
	}
	width := drawer.MeasureString(label)
	drawer.Dot = fixed.P(
		(CanvasWidth-width.Ceil())/2,
		band.Min.Y+(band.Dy()+basicfont.Face7x13.Ascent)/2,
	)
	drawer.DrawString(label)

	return encodePNG(img)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}
