// Package dataset reads the bundled pothole data file.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/pothole-viewer/internal/domain"
)

// Load reads a JSON array of pothole records from path and rewrites each
// image reference to imagePrefix followed by the file name.
func Load(path, imagePrefix string) ([]domain.Pothole, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	potholes, err := Decode(f, imagePrefix)
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	return potholes, nil
}

// Decode parses records from r and normalises their image references.
func Decode(r io.Reader, imagePrefix string) ([]domain.Pothole, error) {
	var potholes []domain.Pothole
	if err := json.NewDecoder(r).Decode(&potholes); err != nil {
		return nil, err
	}
	for i := range potholes {
		potholes[i].Image = ImageURL(imagePrefix, potholes[i].Image)
	}
	return potholes, nil
}

// ImageURL keeps the text after the last "/" of stored and prepends prefix.
// An empty reference stays empty.
func ImageURL(prefix, stored string) string {
	if stored == "" {
		return ""
	}
	name := stored[strings.LastIndex(stored, "/")+1:]
	return prefix + name
}
