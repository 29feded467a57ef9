package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/adastra/pkg/schema"
)

type sample struct {
	Name  string `json:"name" jsonschema:"required,title=Name"`
	Inner struct {
		Rows int `json:"rows,omitempty" jsonschema:"minimum=1"`
	} `json:"inner"`
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	b, err := schema.NewGenerator(&sample{}).Generate()
	require.NoError(t, err)

	var got struct {
		Properties map[string]struct {
			Properties map[string]struct {
				Minimum json.Number `json:"minimum"`
			} `json:"properties"`
			Title string `json:"title"`
		} `json:"properties"`
		Ref      string   `json:"$ref"`
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Empty(t, got.Ref, "the root type is expanded in place")
	assert.Equal(t, []string{"name"}, got.Required)
	assert.Equal(t, "Name", got.Properties["name"].Title)
	assert.Equal(t, json.Number("1"), got.Properties["inner"].Properties["rows"].Minimum)
}

func TestGenerator_BadCommentDir(t *testing.T) {
	t.Parallel()

	_, err := schema.NewGenerator(&sample{}, schema.Comments{
		Base: "example.com/none",
		Dir:  "./does-not-exist",
	}).Generate()
	require.Error(t, err)
}
