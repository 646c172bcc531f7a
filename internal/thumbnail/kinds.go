package thumbnail

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jefefefef/Paperplay/internal/domain/models/library"
)

//go:embed config/kinds.yaml
var configFiles embed.FS

// kindConfig mirrors the embedded YAML layout
type kindConfig struct {
	Kinds map[string][]string `yaml:"kinds"`
}

// KindRegistry maps file extensions to preview kinds
type KindRegistry struct {
	byExt map[string]library.FileKind
}

// NewKindRegistry loads the embedded extension table
func NewKindRegistry() (*KindRegistry, error) {
	data, err := configFiles.ReadFile("config/kinds.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read kinds.yaml: %w", err)
	}

	var config kindConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kinds.yaml: %w", err)
	}

	registry := &KindRegistry{byExt: make(map[string]library.FileKind)}
	for name, extensions := range config.Kinds {
		kind := library.FileKind(name)
		if kind != library.KindImage && kind != library.KindPDF {
			return nil, fmt.Errorf("unknown preview kind %q in kinds.yaml", name)
		}
		for _, ext := range extensions {
			registry.byExt[strings.ToLower(ext)] = kind
		}
	}

	return registry, nil
}

// KindFor classifies a filename by its extension
func (r *KindRegistry) KindFor(filename string) library.FileKind {
	ext := strings.ToLower(filepath.Ext(filename))
	if kind, ok := r.byExt[ext]; ok {
		return kind
	}
	return library.KindOther
}
