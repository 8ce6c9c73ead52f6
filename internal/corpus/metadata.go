package corpus

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// TranslationMeta is one locale's block in the document metadata manifest.
type TranslationMeta struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
}

// MetadataEntry describes one document in the manifest, keyed by locale.
type MetadataEntry struct {
	ID           string                     `json:"id"`
	Translations map[string]TranslationMeta `json:"translations"`
}

// LoadMetadata reads the document metadata manifest, a JSON map from document
// id to metadata entry. The manifest is externally supplied and read-only.
func LoadMetadata(path string) (map[string]MetadataEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "corpus: read metadata manifest %s", path)
	}

	var entries map[string]MetadataEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrapf(err, "corpus: parse metadata manifest %s", path)
	}

	for id, e := range entries {
		if e.ID == "" {
			e.ID = id
			entries[id] = e
		}
	}
	return entries, nil
}
