package yaml_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goccyyaml "github.com/goccy/go-yaml"

	"github.com/macropower/adastra/pkg/yaml"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want string
		err  yaml.Error
	}{
		"with path": {
			err: yaml.Error{
				Err:  errors.New("value is required"),
				Path: yaml.NewPathBuilder().Root().Child("screen").Child("height").Build(),
			},
			want: "error at $.screen.height: value is required",
		},
		"without path": {
			err: yaml.Error{
				Err: errors.New("value is required"),
			},
			want: "value is required",
		},
		"nil error": {
			err:  yaml.Error{},
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestError_AnnotatesSource(t *testing.T) {
	t.Parallel()

	src := []byte("screen:\n  height: 22\n  border: \"#\"\n")

	err := yaml.NewError(
		errors.New("bad border"),
		yaml.WithPath(yaml.NewPathBuilder().Root().Child("screen").Child("border").Build()),
		yaml.WithSource(src),
	)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "error at $.screen.border: bad border"), msg)
	assert.Contains(t, msg, "border")
}

func TestErrorWrapper_Wrap(t *testing.T) {
	t.Parallel()

	src := []byte("a: b\n")
	ew := yaml.NewErrorWrapper(yaml.WithSource(src))

	var yerr *yaml.Error
	wrapped := ew.Wrap(yaml.NewError(errors.New("boom")))
	require.ErrorAs(t, wrapped, &yerr)
	assert.Equal(t, src, yerr.Source)

	plain := errors.New("plain")
	assert.Equal(t, plain, ew.Wrap(plain))
	require.NoError(t, ew.Wrap(nil))
}

func TestDecoder_SyntaxError(t *testing.T) {
	t.Parallel()

	var v map[string]any

	err := yaml.Unmarshal([]byte("a: [1, 2\n"), &v)
	require.Error(t, err)

	var yerr *yaml.Error
	require.ErrorAs(t, err, &yerr)
	assert.NotNil(t, yerr.Token)
}

func TestUnmarshalOrdered(t *testing.T) {
	t.Parallel()

	var v any

	require.NoError(t, yaml.UnmarshalOrdered([]byte("z: 1\na: 2\nm: 3\n"), &v))

	ms, ok := v.(goccyyaml.MapSlice)
	require.True(t, ok, "got %T", v)
	require.Len(t, ms, 3)
	assert.Equal(t, "z", ms[0].Key)
	assert.Equal(t, "a", ms[1].Key)
	assert.Equal(t, "m", ms[2].Key)
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yaml.Marshal(map[string]any{"items": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "items:\n  - a\n  - b\n", string(out))
}
