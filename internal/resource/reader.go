// Package resource reads the JSON data files bundled with the localization.
package resource

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Bundled resource names
const (
	TaxAccountTemplate = "oman_vat_settings.json"
	TaxBracketTemplate = "oman_template.json"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrResourceParse    = errors.New("malformed resource")
)

//go:embed data/*.json
var bundled embed.FS

// Reader decodes a named JSON resource into v.
type Reader interface {
	ReadJSON(name string, v any) error
}

// FSReader reads resources from a file system.
type FSReader struct {
	fsys fs.FS
}

// New creates an FSReader over fsys.
func New(fsys fs.FS) *FSReader {
	return &FSReader{fsys: fsys}
}

// Bundled returns a reader over the JSON files compiled into the binary.
func Bundled() *FSReader {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		panic(err) // "data" is a valid, embedded path
	}
	return New(sub)
}

// Dir returns a reader over dir, used to override the bundled data without a rebuild.
func Dir(dir string) *FSReader {
	return New(os.DirFS(dir))
}

func (r *FSReader) ReadJSON(name string, v any) error {
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrResourceNotFound, name)
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrResourceParse, name, err)
	}
	return nil
}
