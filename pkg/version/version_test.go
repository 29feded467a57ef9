package version_test

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/adastra/pkg/version"
)

func TestFromBuildInfo(t *testing.T) {
	t.Parallel()

	vcs := func(kv ...string) *debug.BuildInfo {
		bi := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
		for i := 0; i+1 < len(kv); i += 2 {
			bi.Settings = append(bi.Settings, debug.BuildSetting{Key: kv[i], Value: kv[i+1]})
		}

		return bi
	}

	tcs := map[string]struct {
		bi           *debug.BuildInfo
		ver          string
		wantVersion  string
		wantRevision string
	}{
		"no build info": {
			wantVersion:  "unknown",
			wantRevision: "unknown",
		},
		"revision is shortened": {
			bi:           vcs("vcs.revision", "0123456789abcdef"),
			wantVersion:  "0123456",
			wantRevision: "0123456",
		},
		"dirty tree": {
			bi:           vcs("vcs.revision", "abc", "vcs.modified", "true"),
			wantVersion:  "abc-dirty",
			wantRevision: "abc-dirty",
		},
		"ldflags version wins": {
			bi:           vcs("vcs.revision", "0123456789"),
			ver:          "v1.2.3",
			wantVersion:  "v1.2.3",
			wantRevision: "0123456",
		},
		"module version": {
			bi:           &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}},
			wantVersion:  "v0.4.0",
			wantRevision: "unknown",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := version.FromBuildInfo(tc.bi, tc.ver, "")
			assert.Equal(t, tc.wantVersion, got.Version)
			assert.Equal(t, tc.wantRevision, got.Revision)
			assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, got.Platform)
		})
	}
}

func TestInfo_String(t *testing.T) {
	t.Parallel()

	i := version.Info{Version: "v1.0.0", Revision: "abc1234", Platform: "linux/amd64", BuildDate: "2026-01-02"}
	assert.Equal(t, "v1.0.0 (abc1234, linux/amd64) built 2026-01-02", i.String())

	i.BuildDate = ""
	assert.Equal(t, "v1.0.0 (abc1234, linux/amd64)", i.String())
}
