// Package v1beta1 holds the metadata shared by every v1beta1 adastra
// configuration kind.
package v1beta1

import (
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

// APIVersion is the apiVersion of every v1beta1 document.
const APIVersion = "adastra.jacobcolvin.com/v1beta1"

// ErrMissingProperty is returned when a schema lacks a property that is
// being constrained.
var ErrMissingProperty = errors.New("schema property not found")

// TypeMeta identifies the kind of a document.
type TypeMeta struct {
	// APIVersion of the document.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version,required"`
	// Kind of the document.
	Kind string `json:"kind" jsonschema:"title=Kind,required"`
}

func (tm TypeMeta) GetAPIVersion() string { return tm.APIVersion }

func (tm TypeMeta) GetKind() string { return tm.Kind }

// Object is implemented by every configuration kind.
type Object interface {
	GetAPIVersion() string
	GetKind() string
	EnsureDefaults()
}

// ConstrainTypeMeta restricts the apiVersion and kind properties of jss to
// the given values.
func ConstrainTypeMeta(jss *jsonschema.Schema, kinds ...string) error {
	err := setConsts(jss, "apiVersion", "API Version", APIVersion)
	if err != nil {
		return err
	}

	return setConsts(jss, "kind", "Kind", kinds...)
}

func setConsts(jss *jsonschema.Schema, prop, title string, values ...string) error {
	if jss.Properties == nil {
		return fmt.Errorf("%w: %s", ErrMissingProperty, prop)
	}

	s, ok := jss.Properties.Get(prop)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingProperty, prop)
	}

	s.OneOf = nil
	for _, v := range values {
		s.OneOf = append(s.OneOf, &jsonschema.Schema{Type: "string", Const: v, Title: title})
	}

	jss.Properties.Set(prop, s)

	return nil
}
