package catalog

import (
	"fmt"
	"path/filepath"

	"github.com/mbeissinger/vj-looper/filesystem"
)

// Entry describes one discovered clip.
type Entry struct {
	Path string `json:"path" jsonschema:"description=Absolute path of the clip."`
	Rel  string `json:"rel" jsonschema:"description=Path relative to the videos directory, with forward slashes."`
	Size int64  `json:"size" jsonschema:"description=File size in bytes."`
}

// Listing is the machine-readable form of a catalog.
type Listing struct {
	Root    string   `json:"root" jsonschema:"description=Absolute path of the videos directory."`
	Formats []string `json:"formats" jsonschema:"description=Accepted file name suffixes."`
	Filter  string   `json:"filter,omitempty" jsonschema:"description=Fuzzy filter the clips were narrowed with."`
	Clips   []Entry  `json:"clips" jsonschema:"description=Clips in discovery order."`
}

// Listing stats every clip of the catalog.
func (c Catalog) Listing(formats []string, filter string) (Listing, error) {
	listing := Listing{
		Root:    c.root,
		Formats: formats,
		Filter:  filter,
		Clips:   make([]Entry, 0, len(c.paths)),
	}

	for _, path := range c.paths {
		info, err := filesystem.API().Stat(path)
		if err != nil {
			return Listing{}, fmt.Errorf("stat %s: %w", path, err)
		}

		listing.Clips = append(listing.Clips, Entry{
			Path: path,
			Rel:  filepath.ToSlash(c.Rel(path)),
			Size: info.Size(),
		})
	}

	return listing, nil
}
