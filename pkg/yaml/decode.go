package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// Decoder wraps [yaml.Decoder], converting its errors into [*Error].
type Decoder struct {
	d *yaml.Decoder
}

// NewDecoder creates a [Decoder] reading from r. Duplicate map keys are
// always allowed; opts are passed through to goccy/go-yaml.
func NewDecoder(r io.Reader, opts ...yaml.DecodeOption) *Decoder {
	opts = append([]yaml.DecodeOption{yaml.AllowDuplicateMapKey()}, opts...)

	return &Decoder{
		d: yaml.NewDecoder(r, opts...),
	}
}

func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}

// Unmarshal decodes a single document from data into v.
func Unmarshal(data []byte, v any, opts ...yaml.DecodeOption) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}

// UnmarshalOrdered decodes data into v, keeping mappings as ordered
// [yaml.MapSlice] values when v is an untyped destination.
func UnmarshalOrdered(data []byte, v any) error {
	return Unmarshal(data, v, yaml.UseOrderedMap())
}
