// Package index loads, synchronizes and queries the package index files
// that describe the available packages, platforms and tools.
package index

import (
	"encoding/json"
	"io"
	"os"

	"github.com/glorpus-work/boardman/pkg/errors"
	"github.com/glorpus-work/boardman/pkg/model"
)

// Index is the parsed form of a single package index file.
type Index struct {
	Packages []*model.Package `json:"packages"`
}

// ParseIndex parses an index from JSON data.
func ParseIndex(data []byte) (*Index, error) {
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, errors.Wrap(err, errors.ErrIndexParse.Error())
	}
	return &index, nil
}

// ParseIndexFromReader parses an index from an io.Reader.
func ParseIndexFromReader(reader io.Reader) (*Index, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read index data")
	}
	return ParseIndex(data)
}

// ParseIndexFromFile parses an index from a file on disk.
func ParseIndexFromFile(filePath string) (*Index, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open index file %s for parsing", filePath)
	}
	defer file.Close()
	return ParseIndexFromReader(file)
}

// FindPackage returns the package with the given name or nil if it is not
// part of this index.
func (idx *Index) FindPackage(name string) *model.Package {
	for _, pkg := range idx.Packages {
		if pkg.Name == name {
			return pkg
		}
	}
	return nil
}
