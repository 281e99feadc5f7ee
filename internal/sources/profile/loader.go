package profile

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the name of the embedded profile document.
const DefaultFile = "profile.yaml"

//go:embed profile.yaml
var embedded embed.FS

// Loader reads and parses a profile document from a filesystem.
type Loader struct {
	fsys fs.FS
	name string
}

// NewLoader creates a loader for name inside fsys.
func NewLoader(fsys fs.FS, name string) *Loader {
	return &Loader{
		fsys: fsys,
		name: name,
	}
}

// NewEmbeddedLoader returns a loader for the profile compiled into the binary.
func NewEmbeddedLoader() *Loader {
	return NewLoader(embedded, DefaultFile)
}

// Load reads and parses the document. Unknown keys are rejected so a typo
// cannot silently drop a section.
func (l *Loader) Load() (Document, error) {
	data, err := fs.ReadFile(l.fsys, l.name)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse profile yaml: %w", err)
	}

	return doc, nil
}
