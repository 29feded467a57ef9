// Package schema generates JSON schemas for adastra configuration kinds.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Comments locates Go sources whose doc comments become schema
// descriptions. Dir is walked relative to the working directory, and Base
// is the import path of Dir.
type Comments struct {
	Base string
	Dir  string
}

// Generator reflects a JSON schema from a Go value.
type Generator struct {
	obj       any
	reflector *jsonschema.Reflector
	comments  []Comments
}

// NewGenerator creates a [Generator] for obj.
func NewGenerator(obj any, comments ...Comments) *Generator {
	return &Generator{
		obj:      obj,
		comments: comments,
		reflector: &jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			DoNotReference:             true,
			ExpandedStruct:             true,
		},
	}
}

// Generate returns the indented schema.
func (g *Generator) Generate() ([]byte, error) {
	for _, c := range g.comments {
		err := g.reflector.AddGoComments(c.Base, c.Dir)
		if err != nil {
			return nil, fmt.Errorf("read comments in %s: %w", c.Dir, err)
		}
	}

	b, err := json.MarshalIndent(g.reflector.Reflect(g.obj), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(b, '\n'), nil
}
