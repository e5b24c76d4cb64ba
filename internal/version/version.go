// Package version reports the campuspass build.
//
// Release builds stamp the values with ldflags:
//
//	go build -ldflags="-X github.com/muurk/campuspass/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/campuspass/internal/version.Commit=1a2b3c4"
//
// Other builds read VCS stamps from the binary and report a dev version.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// Version is the release version, or dev-<date> for unreleased builds.
	Version = ""
	// Commit is the short git revision, suffixed with -dirty for modified trees.
	Commit = ""
)

// Info is the build description shown by `campuspass version`.
type Info struct {
	Version   string
	Commit    string
	GoVersion string
	BuiltAt   time.Time
}

var build Info

func init() {
	build = fromBuildInfo(debug.ReadBuildInfo())
	if Version == "" {
		Version = build.Version
	}
	if Commit == "" {
		Commit = build.Commit
	}
	build.Version, build.Commit = Version, Commit
}

// fromBuildInfo derives an Info from the stamps the go tool embeds.
func fromBuildInfo(info *debug.BuildInfo, ok bool) Info {
	out := Info{Commit: "unknown"}
	if ok && info != nil {
		out.GoVersion = info.GoVersion
		var modified bool
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				out.Commit = shortRevision(s.Value)
			case "vcs.modified":
				modified = s.Value == "true"
			case "vcs.time":
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					out.BuiltAt = t
				}
			}
		}
		if modified && out.Commit != "unknown" {
			out.Commit += "-dirty"
		}
	}

	stamp := out.BuiltAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	out.Version = "dev-" + stamp.Format("20060102")
	return out
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// Get returns the running build.
func Get() Info {
	return build
}

// Full returns the version and commit on one line.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent identifies the client on outgoing requests.
func UserAgent() string {
	return "campuspass/" + Version
}
