package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeInto unmarshals filename over the existing contents of out, so
// fields missing from the file keep their current values.
func decodeInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return unmarshal(filename, data, out)
}

func unmarshal(filename string, data []byte, out any) error {
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// ParseTuning decodes data over the defaults and validates the result.
func ParseTuning(data []byte) (*TuningSpec, error) {
	spec := DefaultTuning()
	if err := unmarshal(TuningFile, data, spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
