package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML layout:
//
//	tables:
//	  - name: orders
//	    columns: [id, total_dollars]
type File struct {
	Tables []TableSpec `yaml:"tables"`
}

// LoadYAML reads a schema document and builds a Snapshot from it.
func LoadYAML(r io.Reader) (*Snapshot, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return Build(nil)
		}
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return Build(f.Tables)
}

// LoadFile reads a schema YAML file.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path) //nolint:gosec // path is caller-provided config
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
