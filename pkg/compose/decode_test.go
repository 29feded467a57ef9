package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/adastra/pkg/compose"
)

func TestDecodeContent(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  compose.Content
		err   error
		input string
	}{
		"text": {
			input: `"Welcome aboard"`,
			want:  compose.Text("Welcome aboard"),
		},
		"lines": {
			input: "- one\n- two\n",
			want:  compose.Lines{"one", "two"},
		},
		"table keeps document order": {
			input: "Captain:\n  - Line1\n  - Line2\nAlpha:\n  - x\n",
			want: compose.Table{
				{Key: "Captain", Values: []string{"Line1", "Line2"}},
				{Key: "Alpha", Values: []string{"x"}},
			},
		},
		"table scalar value": {
			input: "Pilot: ready\n",
			want: compose.Table{
				{Key: "Pilot", Values: []string{"ready"}},
			},
		},
		"table nested mapping": {
			input: "Pilot:\n  skill: 3\n",
			err:   compose.ErrMalformedTableValue,
		},
		"table mixed sequence": {
			input: "Pilot:\n  - a\n  - 3\n",
			err:   compose.ErrMalformedTableValue,
		},
		"table empty value": {
			input: "Pilot:\n",
			err:   compose.ErrMalformedTableValue,
		},
		"number": {
			input: "42\n",
			err:   compose.ErrUnsupportedContentKind,
		},
		"nested sequence": {
			input: "- [a, b]\n",
			err:   compose.ErrUnsupportedContentKind,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := compose.DecodeContent([]byte(tc.input))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestContentOf(t *testing.T) {
	t.Parallel()

	got, err := compose.ContentOf([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, compose.Lines{"a"}, got)

	_, err = compose.ContentOf(map[string]any{"a": "b"})
	require.ErrorIs(t, err, compose.ErrUnsupportedContentKind)
}
