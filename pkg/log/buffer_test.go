package log_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/adastra/pkg/log"
)

func records(h *log.Hold) []string {
	var out []string
	for _, r := range h.Records() {
		out = append(out, string(r))
	}

	return out
}

func TestHold_Write(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		writes      []string
		want        []string
		size        int
		wantDropped int
	}{
		"empty": {
			size: 3,
		},
		"under capacity": {
			size:   3,
			writes: []string{"a", "b"},
			want:   []string{"a", "b"},
		},
		"exactly full": {
			size:   3,
			writes: []string{"a", "b", "c"},
			want:   []string{"a", "b", "c"},
		},
		"wraps around": {
			size:        3,
			writes:      []string{"a", "b", "c", "d", "e"},
			want:        []string{"c", "d", "e"},
			wantDropped: 2,
		},
		"empty writes are ignored": {
			size:   2,
			writes: []string{"", "a", ""},
			want:   []string{"a"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h := log.NewHold(tc.size)
			for _, w := range tc.writes {
				n, err := h.Write([]byte(w))
				require.NoError(t, err)
				assert.Equal(t, len(w), n)
			}

			assert.Equal(t, tc.want, records(h))
			assert.Equal(t, len(tc.want), h.Len())
			assert.Equal(t, tc.wantDropped, h.Dropped())
		})
	}
}

func TestHold_DefaultSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, log.DefaultHoldSize, log.NewHold(0).Cap())
	assert.Equal(t, log.DefaultHoldSize, log.NewHold(-1).Cap())
	assert.Equal(t, 4, log.NewHold(4).Cap())
}

func TestHold_CopiesInput(t *testing.T) {
	t.Parallel()

	h := log.NewHold(2)
	p := []byte("abc")
	_, err := h.Write(p)
	require.NoError(t, err)

	p[0] = 'x'
	recs := h.Records()
	recs[0][1] = 'y'

	assert.Equal(t, []string{"abc"}, records(h))
}

func TestHold_WriteTo(t *testing.T) {
	t.Parallel()

	h := log.NewHold(2)
	for _, s := range []string{"one\n", "two\n", "three\n"} {
		_, err := h.Write([]byte(s))
		require.NoError(t, err)
	}

	var out bytes.Buffer

	n, err := h.WriteTo(&out)
	require.NoError(t, err)

	want := "... 1 earlier log records dropped\ntwo\nthree\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, int64(len(want)), n)
	assert.Equal(t, 0, h.Len(), "WriteTo resets the hold")
	assert.Equal(t, 0, h.Dropped())
}

func TestHold_Concurrent(t *testing.T) {
	t.Parallel()

	h := log.NewHold(50)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Go(func() {
			for j := range 20 {
				_, err := fmt.Fprintf(h, "%d-%d", i, j)
				assert.NoError(t, err)
			}
		})
	}

	wg.Wait()

	assert.Equal(t, 50, h.Len())
	assert.Equal(t, 150, h.Dropped())
}
