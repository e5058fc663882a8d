// Package checks runs assertions declared in YAML or JSON check
// files. Arguments may reference values of a JSON input document
// with "$." paths.
package checks

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.assertions/pkg/httpclient"
)

//go:embed schema.json
var schemaJSON []byte

// File is the structure of a check file.
type File struct {
	Version     string         `json:"version" yaml:"version"`
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Input       string         `json:"input,omitempty" yaml:"input,omitempty"`
	Checks      []Check        `json:"checks" yaml:"checks"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Source is the path the file was loaded from.
	Source string `json:"-" yaml:"-"`
}

// Check is a single assertion: a kind name and its named arguments.
type Check struct {
	ID          string         `json:"id" yaml:"id"`
	Kind        string         `json:"kind" yaml:"kind"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Args        map[string]any `json:"args,omitempty" yaml:"args,omitempty"`
	Message     string         `json:"message,omitempty" yaml:"message,omitempty"`
	Template    bool           `json:"template,omitempty" yaml:"template,omitempty"`
	Skip        bool           `json:"skip,omitempty" yaml:"skip,omitempty"`
}

// InputPath returns the input document path resolved against the
// directory of the file, or "" when the file names no input. URLs
// are returned unchanged.
func (f *File) InputPath() string {
	if f.Input == "" || filepath.IsAbs(f.Input) || f.Source == "" || httpclient.IsURL(f.Input) {
		return f.Input
	}
	return filepath.Join(filepath.Dir(f.Source), f.Input)
}

// IsCheckFile reports whether path has a check file extension.
func IsCheckFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// isJSON reports whether path names a JSON document.
func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// decode unmarshals a check document. YAML is a superset of JSON, but
// tab-indented JSON is not valid YAML, so .json files use the JSON
// decoder.
func decode(data []byte, asJSON bool, v any) error {
	if asJSON {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// Parse decodes a YAML (or untabbed JSON) check document.
func Parse(data []byte) (*File, error) {
	var file File
	if err := decode(data, false, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// ParseFile reads and decodes the check file at path. A missing name
// defaults to the file name without extension.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read check file %s: %w", path, err)
	}
	var file *File
	if isJSON(path) {
		file = &File{}
		err = decode(data, true, file)
	} else {
		file, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse check file %s: %w", path, err)
	}
	file.Source = path
	if file.Name == "" {
		base := filepath.Base(path)
		file.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return file, nil
}
