// Package parser loads tabular files into datasets.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/pipeline"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

// Parser reads one tabular format. Parse returns the dataset and any fix
// entries recorded while decoding.
type Parser interface {
	CanParse(filename string) bool
	Parse(name string, content []byte) (*table.Dataset, []string, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ErrUnsupported indicates a file extension no parser handles.
var ErrUnsupported = errors.New("unsupported file format")

// ParseFile selects a parser based on filename and returns the dataset.
func ParseFile(path string) (*table.Dataset, []string, error) {
	p := lookup(path)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}
	return p.Parse(filepath.Base(path), data)
}

// Load parses path into a pipeline input keyed by its base name. Parse
// failures are carried on the input rather than returned.
func Load(path string) pipeline.Input {
	ds, fixes, err := ParseFile(path)
	return pipeline.Input{Name: filepath.Base(path), Dataset: ds, Fixes: fixes, Err: err}
}

// LoadAll loads every path in order.
func LoadAll(paths []string) []pipeline.Input {
	out := make([]pipeline.Input, 0, len(paths))
	for _, p := range paths {
		out = append(out, Load(p))
	}
	return out
}

// Supported reports whether some parser accepts filename.
func Supported(filename string) bool { return lookup(filename) != nil }

func lookup(filename string) Parser {
	for _, p := range registry {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

func hasExt(filename, ext string) bool {
	return strings.EqualFold(filepath.Ext(filename), ext)
}

func init() {
	Register(delimitedParser{ext: ".csv", comma: ','})
	Register(delimitedParser{ext: ".tsv", comma: '\t'})
}
