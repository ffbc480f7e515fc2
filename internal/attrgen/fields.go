package attrgen

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrNoFields is returned by ReadFields for a document without a fields
// list.
var ErrNoFields = errors.New("no fields")

type fieldFile struct {
	Fields []Field `yaml:"fields"`
}

// ReadFields decodes a field list:
//
//	fields:
//	  - {attr: scrollTop, type: float64}
//	  - {attr: cw, method: ViewportWidth, type: float64}
func ReadFields(r io.Reader) ([]Field, error) {
	var f fieldFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoFields
		}
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	if len(f.Fields) == 0 {
		return nil, ErrNoFields
	}
	return f.Fields, nil
}
