// Package cache persists the last-built-URL marker and decides, once per
// build pass, whether incremental caching is in effect.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MarkerFileName is the marker file kept in the working directory. It holds
// exactly the URL used in the most recent successful build; absence means no
// prior build. It is the sole persisted state across process runs.
const MarkerFileName = ".mdpress"

// Marker is the persisted last-built URL.
type Marker struct {
	URL string
}

// LoadMarker reads the marker from root. A missing file returns (nil, nil).
func LoadMarker(root string) (*Marker, error) {
	data, err := os.ReadFile(filepath.Join(root, MarkerFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache marker: %w", err)
	}
	return &Marker{URL: strings.TrimSpace(string(data))}, nil
}

// SaveMarker writes the marker for root, overwriting any previous value.
func SaveMarker(root, url string) error {
	p := filepath.Join(root, MarkerFileName)
	if err := os.WriteFile(p, []byte(url+"\n"), 0o644); err != nil {
		return fmt.Errorf("write cache marker: %w", err)
	}
	return nil
}
