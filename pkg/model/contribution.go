// Package model provides the data structures for packages, platforms, tools,
// and their downloadable archives as described by package index files.
package model

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/glorpus-work/boardman/pkg/platform"
	"github.com/hashicorp/go-version"
)

// Package represents a vendor entry in a package index. It owns the platforms
// and tools published under that vendor name.
type Package struct {
	Name       string      `json:"name"`
	Maintainer string      `json:"maintainer,omitempty"`
	WebsiteURL string      `json:"websiteURL,omitempty"`
	Email      string      `json:"email,omitempty"`
	Platforms  []*Platform `json:"platforms"`
	Tools      []*Tool     `json:"tools"`

	// Trusted is set when the package comes from the default index source.
	// It is derived at load time and never serialized.
	Trusted bool `json:"-"`
}

// Platform is a versioned board-support contribution. Its archive fields
// (url, archiveFileName, checksum, size) live flat in the index JSON, so the
// Archive is embedded.
type Platform struct {
	Archive

	Name         string           `json:"name"`
	Architecture string           `json:"architecture"`
	Version      string           `json:"version"`
	Category     string           `json:"category,omitempty"`
	Boards       []Board          `json:"boards,omitempty"`
	Tools        []ToolDependency `json:"toolsDependencies"`

	// Package points back at the owning vendor entry. Set at load time.
	Package *Package `json:"-"`
	// ResolvedTools holds the arena records the flat Tools list resolved to.
	ResolvedTools []*Tool `json:"-"`
	// ReadOnly marks bundled platforms that must never be removed.
	ReadOnly bool `json:"-"`
}

// Board names a board supported by a platform. Display metadata only.
type Board struct {
	Name string `json:"name"`
}

// ToolDependency references a tool by the vendor that publishes it, its name,
// and an exact version. Platforms list their tools flat; there is no
// transitive resolution.
type ToolDependency struct {
	Packager string `json:"packager"`
	Name     string `json:"name"`
	Version  string `json:"version"`
}

// Tool is a shared dependency published in per-host flavors. At most one
// flavor matches any given host.
type Tool struct {
	Name    string     `json:"name"`
	Version string     `json:"version"`
	Flavors []*Archive `json:"systems"`

	// Package points back at the owning vendor entry. Set at load time.
	Package *Package `json:"-"`
}

// Archive describes one downloadable artifact: where to fetch it, how to
// verify it, and its local lifecycle state. The state fields are never
// serialized; they are derived from the store at load time and mutated by
// install and remove operations.
type Archive struct {
	URL             string `json:"url"`
	ArchiveFileName string `json:"archiveFileName"`
	Checksum        string `json:"checksum"`
	Size            Size   `json:"size"`
	Host            string `json:"host,omitempty"`

	DownloadedFile  string `json:"-"`
	Installed       bool   `json:"-"`
	InstalledFolder string `json:"-"`
}

// Size is a byte count that accepts both a JSON number and a quoted decimal
// string; published index files contain both spellings.
type Size int64

// UnmarshalJSON implements json.Unmarshaler.
func (s *Size) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*s = Size(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", v, err)
		}
		*s = Size(n)
	case nil:
		*s = 0
	default:
		return fmt.Errorf("invalid size value of type %T", raw)
	}
	return nil
}

// String returns the canonical reference for a platform: "vendor:arch@version".
func (p *Platform) String() string {
	vendor := "?"
	if p.Package != nil {
		vendor = p.Package.Name
	}
	return fmt.Sprintf("%s:%s@%s", vendor, p.Architecture, p.Version)
}

// GetVersion returns the parsed version of this platform, or nil when the
// version string does not parse.
func (p *Platform) GetVersion() *version.Version {
	v, err := version.NewVersion(p.Version)
	if err != nil {
		return nil
	}
	return v
}

// GetURL returns the parsed download URL of this archive, or nil when it does
// not parse.
func (a *Archive) GetURL() *url.URL {
	parsed, err := url.Parse(a.URL)
	if err != nil {
		return nil
	}
	return parsed
}

// MatchesHost checks if this archive's host descriptor matches the given
// platform. An empty descriptor matches everything.
func (a *Archive) MatchesHost(host platform.Platform) bool {
	if a.Host == "" {
		return true
	}
	p, err := platform.ParseHost(a.Host)
	if err != nil {
		return false
	}
	return p.Matches(host)
}

// String returns the canonical reference for a tool: "vendor:name@version".
func (t *Tool) String() string {
	vendor := "?"
	if t.Package != nil {
		vendor = t.Package.Name
	}
	return fmt.Sprintf("%s:%s@%s", vendor, t.Name, t.Version)
}

// GetVersion returns the parsed version of this tool, or nil when the version
// string does not parse.
func (t *Tool) GetVersion() *version.Version {
	v, err := version.NewVersion(t.Version)
	if err != nil {
		return nil
	}
	return v
}

// FlavorForHost returns the first flavor matching the given host, or nil when
// the tool is not available for it.
func (t *Tool) FlavorForHost(host platform.Platform) *Archive {
	for _, f := range t.Flavors {
		if f.MatchesHost(host) {
			return f
		}
	}
	return nil
}

// String returns the dependency reference as "packager:name@version".
func (d ToolDependency) String() string {
	return fmt.Sprintf("%s:%s@%s", d.Packager, d.Name, d.Version)
}
