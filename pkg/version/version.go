// Package version reports build information, set with ldflags or read from
// the module build info.
package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Info describes the running binary
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Source    string `json:"source,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags "-X github.com/mutablelogic/go-chatbot/pkg/version.GitTag=..."
var (
	GitTag    string
	GitBranch string
)

const (
	shortHash = 12
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or short commit hash, or "dev"
func Version() string {
	info := Get("")
	switch {
	case info.Tag != "":
		return info.Tag
	case info.Branch != "":
		return info.Branch
	case len(info.Hash) >= shortHash:
		return info.Hash[:shortHash]
	}
	return "dev"
}

// Get returns build information for the named executable
func Get(name string) Info {
	info := Info{
		Name:     name,
		Tag:      GitTag,
		Branch:   GitBranch,
		Compiler: runtime.Version(),
	}
	if build, ok := debug.ReadBuildInfo(); ok {
		info.Source = build.Main.Path
		var goos, goarch string
		for _, s := range build.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Hash = s.Value
			case "vcs.time":
				info.BuildTime = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			case "GOOS":
				goos = s.Value
			case "GOARCH":
				goarch = s.Value
			}
		}
		if goos != "" && goarch != "" {
			info.Platform = goos + "/" + goarch
		}
	}
	return info
}

// JSON returns the build information for the named executable as indented
// JSON
func JSON(name string) []byte {
	info := Get(name)
	info.Version = Version()
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}
