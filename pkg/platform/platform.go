// Package platform identifies the running host and matches it against the
// host descriptors carried by tool archive flavors.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	// OSWindows represents the Windows operating system.
	OSWindows = "windows"
	// OSLinux represents the Linux operating system.
	OSLinux = "linux"
	// OSDarwin represents the macOS operating system.
	OSDarwin = "darwin"
	// AnyOS matches every operating system.
	AnyOS = "any"

	// ArchAMD64 represents the AMD64 (x86_64) architecture.
	ArchAMD64 = "amd64"
	// Arch386 represents the 32-bit x86 architecture.
	Arch386 = "386"
	// ArchARM represents the 32-bit ARM architecture.
	ArchARM = "arm"
	// ArchARM64 represents the ARM64 (AArch64) architecture.
	ArchARM64 = "arm64"
	// AnyArch matches every architecture.
	AnyArch = "any"
)

// Platform represents a target host as an OS and architecture pair. Either
// field can be "any" to act as a wildcard.
type Platform struct {
	OS   string `yaml:"os" json:"os"`
	Arch string `yaml:"arch" json:"arch"`
}

// Current returns the platform boardman is running on.
func Current() Platform {
	return Platform{
		OS:   NormalizeOS(runtime.GOOS),
		Arch: NormalizeArch(runtime.GOARCH),
	}
}

// Matches checks if this platform matches the target platform, treating "any"
// as a wildcard on either side.
func (p Platform) Matches(target Platform) bool {
	return (p.OS == AnyOS || target.OS == AnyOS || p.OS == target.OS) &&
		(p.Arch == AnyArch || target.Arch == AnyArch || p.Arch == target.Arch)
}

// String returns the canonical host descriptor, e.g. "linux-amd64".
func (p Platform) String() string {
	return fmt.Sprintf("%s-%s", p.OS, p.Arch)
}

// ParseHost parses a host descriptor of the form "os-arch" as used by tool
// archive flavors. A bare OS ("linux") matches any architecture on that OS;
// "any" matches everything.
func ParseHost(host string) (Platform, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return Platform{}, fmt.Errorf("host descriptor cannot be empty")
	}
	if host == AnyOS {
		return Platform{OS: AnyOS, Arch: AnyArch}, nil
	}

	parts := strings.SplitN(host, "-", 2)
	p := Platform{OS: NormalizeOS(parts[0]), Arch: AnyArch}
	if len(parts) == 2 {
		p.Arch = NormalizeArch(parts[1])
	}
	return p, nil
}

// NormalizeOS maps common OS name variations to the GOOS vocabulary.
func NormalizeOS(os string) string {
	os = strings.ToLower(os)
	switch os {
	case "macos", "mac", "osx":
		return OSDarwin
	case "win":
		return OSWindows
	default:
		return os
	}
}

// NormalizeArch maps common architecture name variations to the GOARCH
// vocabulary.
func NormalizeArch(arch string) string {
	arch = strings.ToLower(arch)
	switch arch {
	case "x86_64", "x64":
		return ArchAMD64
	case "x86", "i386", "i686":
		return Arch386
	case "aarch64":
		return ArchARM64
	default:
		return arch
	}
}
