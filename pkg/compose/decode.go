package compose

import (
	"fmt"

	goccyyaml "github.com/goccy/go-yaml"

	"github.com/macropower/adastra/pkg/yaml"
)

// DecodeContent decodes a YAML document into [Content].
//
//   - A string scalar is [Text].
//   - A sequence of strings is [Lines].
//   - A mapping of keys to sequences of strings is a [Table], in document
//     order. A single string value is accepted as a one-item sequence.
func DecodeContent(data []byte) (Content, error) {
	var v any

	err := yaml.UnmarshalOrdered(data, &v)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	return ContentOf(v)
}

// ContentOf converts an untyped decoded value into [Content]. Mappings must
// be ordered ([goccyyaml.MapSlice]) so that table rows keep their order.
func ContentOf(v any) (Content, error) {
	switch v := v.(type) {
	case string:
		return Text(v), nil

	case []any:
		lines, ok := stringsOf(v)
		if !ok {
			return nil, fmt.Errorf("%w: sequence must contain only strings", ErrUnsupportedContentKind)
		}

		return Lines(lines), nil

	case []string:
		return Lines(v), nil

	case goccyyaml.MapSlice:
		t := make(Table, 0, len(v))
		for _, item := range v {
			key := fmt.Sprint(item.Key)

			values, err := tableValues(item.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}

			t = append(t, TableEntry{Key: key, Values: values})
		}

		return t, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedContentKind, v)
}

func tableValues(v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil

	case []any:
		values, ok := stringsOf(v)
		if ok {
			return values, nil
		}
	}

	return nil, fmt.Errorf("%w: want a sequence of strings, got %T", ErrMalformedTableValue, v)
}

func stringsOf(items []any) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}

		out = append(out, s)
	}

	return out, true
}
