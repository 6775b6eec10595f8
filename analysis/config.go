package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions reads YAML options from r on top of DefaultOptions. Unknown
// keys are rejected.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

// LoadOptionsFile is LoadOptions on the contents of path.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	opts, err := LoadOptions(bytes.NewReader(data))
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}
