package thumbnail

import (
	"fmt"
	"log/slog"

	"github.com/jefefefef/Paperplay/internal/domain/models/library"
)

// Canvas dimensions for every generated preview
const (
	CanvasWidth  = 200
	CanvasHeight = 280
)

// Generator renders fixed-size document previews. Decodable images are
// scaled onto the canvas; everything else, PDFs included, gets a
// kind-specific placeholder. Generate always succeeds: all fallible work
// (loading the extension table, rendering the placeholders) happens once
// in NewGenerator.
type Generator struct {
	registry     *KindRegistry
	logger       *slog.Logger
	placeholders map[library.FileKind][]byte
}

// NewGenerator creates a generator with prerendered placeholders
func NewGenerator(logger *slog.Logger) (*Generator, error) {
	registry, err := NewKindRegistry()
	if err != nil {
		return nil, fmt.Errorf("load kind registry: %w", err)
	}

	placeholders := make(map[library.FileKind][]byte)
	for _, kind := range []library.FileKind{library.KindImage, library.KindPDF, library.KindOther} {
		data, err := renderPlaceholder(kind)
		if err != nil {
			return nil, fmt.Errorf("render %s placeholder: %w", kind, err)
		}
		placeholders[kind] = data
	}

	return &Generator{
		registry:     registry,
		logger:       logger,
		placeholders: placeholders,
	}, nil
}

// Generate renders a preview for the named file content
func (g *Generator) Generate(filename string, content []byte) library.Thumbnail {
	kind := g.registry.KindFor(filename)

	switch kind {
	case library.KindImage:
		data, err := renderImage(content)
		if err != nil {
			g.logger.Warn("image decode failed, using placeholder",
				"filename", filename,
				"error", err)
			return library.Thumbnail{Kind: library.KindImage, PNG: g.placeholders[library.KindImage]}
		}
		return library.Thumbnail{Kind: library.KindImage, PNG: data}

	case library.KindPDF:
		return library.Thumbnail{
			Kind:  library.KindPDF,
			Pages: inspectPDF(content),
			PNG:   g.placeholders[library.KindPDF],
		}

	default:
		return library.Thumbnail{Kind: library.KindOther, PNG: g.placeholders[library.KindOther]}
	}
}
