package version

import (
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const AppName = "AppServer"

// Set on release builds with
// -ldflags "-X github.com/exemplo/appserver/internal/version.Version=1.2.3 ..."
var (
	Version   string
	Revision  string
	BuildDate string
)

const (
	unknownVersion  = "0.0.0-dev"
	unknownRevision = "HEAD"
)

// Build describes the running binary.
type Build struct {
	App       string `yaml:"app"`
	Version   string `yaml:"version"`
	Revision  string `yaml:"revision"`
	BuildDate string `yaml:"build_date,omitempty"`
	GoVersion string `yaml:"go"`
	Platform  string `yaml:"platform"`
}

var current = sync.OnceValue(func() Build {
	info, _ := debug.ReadBuildInfo()
	return resolve(Version, Revision, BuildDate, info)
})

// Get returns the build of the running binary. Linker values win over Go
// build metadata; whatever is still missing gets a dev placeholder.
func Get() Build {
	return current()
}

func resolve(version, revision, buildDate string, info *debug.BuildInfo) Build {
	b := Build{
		App:       AppName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info != nil {
		settings := make(map[string]string, len(info.Settings))
		for _, s := range info.Settings {
			settings[s.Key] = s.Value
		}

		if b.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			b.Version = strings.TrimPrefix(info.Main.Version, "v")
		}
		if b.Revision == "" {
			if r := settings["vcs.revision"]; r != "" {
				if settings["vcs.modified"] == "true" {
					r += "-dirty"
				}
				b.Revision = r
			}
		}
		if b.BuildDate == "" {
			b.BuildDate = settings["vcs.time"]
		}
	}

	if b.Version == "" {
		b.Version = unknownVersion
	}
	if b.Revision == "" {
		b.Revision = unknownRevision
	}
	return b
}

// Short is `1.2.3 (5e23a4)`.
func (b Build) Short() string {
	return fmt.Sprintf("%s (%s)", b.Version, b.Revision)
}

// String is `AppServer 1.2.3 (5e23a4; go1.23.6; linux/amd64)`, with the build
// date appended when known.
func (b Build) String() string {
	details := []string{b.Revision, b.GoVersion, b.Platform}
	if b.BuildDate != "" {
		details = append(details, b.BuildDate)
	}
	return fmt.Sprintf("%s %s (%s)", b.App, b.Version, strings.Join(details, "; "))
}

func (b Build) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", b.Version),
		slog.String("revision", b.Revision),
		slog.String("built", b.BuildDate),
		slog.String("go", b.GoVersion),
		slog.String("platform", b.Platform),
	)
}
