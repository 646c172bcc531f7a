package library

import (
	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
)

// Thumbnailer converts an uploaded file into a fixed-size preview.
// Implementations decode image files onto a 200x280 canvas and fall back
// to a kind-specific placeholder for everything else.
type Thumbnailer interface {
	// Generate renders a preview for the named file content. It never
	// fails: undecodable or unrecognized input yields a placeholder,
	// so every upload ends up with some thumbnail.
	Generate(filename string, content []byte) models.Thumbnail
}
