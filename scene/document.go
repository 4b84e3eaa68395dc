// scene/document.go
package scene

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is one parsed scene file.
type Document struct {
	Entities []Entry `json:"entities"`
}

// Entry is either an entity definition or an import of another scene file,
// resolved relative to the importing file.
type Entry struct {
	ID         string                         `json:"id,omitempty"`
	Components map[string]jsoniter.RawMessage `json:"components,omitempty"`
	Import     string                         `json:"import,omitempty"`
}

// IsImport reports whether the entry pulls in another file.
func (e Entry) IsImport() bool {
	return e.Import != ""
}

// ReadDocument parses a scene document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scene read: %w", err)
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("scene read: invalid JSON: %w", err)
	}
	for i, entry := range doc.Entities {
		if entry.IsImport() && (entry.ID != "" || len(entry.Components) > 0) {
			return nil, fmt.Errorf("scene read: entry %d mixes import %q with an entity definition", i, entry.Import)
		}
	}
	return doc, nil
}
