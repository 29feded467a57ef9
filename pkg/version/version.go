// Package version reports how the binary was built.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags.
var (
	Version   string
	BuildDate string
)

const unknown = "unknown"

// Info describes a build.
type Info struct {
	Version   string
	Revision  string
	BuildDate string
	GoVersion string
	Platform  string
	Modified  bool
}

// Get returns the build information of the running binary. Version falls
// back to the module version from the build info, then to the revision.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()

	return fromBuildInfo(bi, Version, BuildDate)
}

func fromBuildInfo(bi *debug.BuildInfo, ver, date string) Info {
	info := Info{
		Version:   ver,
		Revision:  unknown,
		BuildDate: date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi != nil {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Revision = s.Value[:min(7, len(s.Value))]
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}

		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}

	if info.Modified && info.Revision != unknown {
		info.Revision += "-dirty"
	}

	if info.Version == "" {
		info.Version = info.Revision
	}

	return info
}

func (i Info) String() string {
	s := fmt.Sprintf("%s (%s, %s)", i.Version, i.Revision, i.Platform)
	if i.BuildDate != "" {
		s += " built " + i.BuildDate
	}

	return s
}
