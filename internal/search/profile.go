package search

import (
	"fmt"
	"os"
	"runtime"
	"sort"
)

// PlatformProfile carries the exclusion tables for one operating system family
type PlatformProfile struct {
	Name       string
	Root       string         // Filesystem root searched by the broad stages
	DirNames   ExclusionTable // Skipped by name anywhere in the tree
	TopLevel   ExclusionTable // Skipped directly under the root by the broad stage
	AlwaysSkip ExclusionTable // Skipped directly under the root by the exhaustive stage
	UsersDir   string         // Name of the directory holding user homes
}

var (
	unixDirNames = MustExclusionTable("bin", "lib", "sbin", "usr")

	// LinuxProfile is used on Linux and other Unix systems
	LinuxProfile = PlatformProfile{
		Name:       "linux",
		Root:       "/",
		DirNames:   unixDirNames,
		TopLevel:   MustExclusionTable("boot", "dev", "opt", "proc", "sys", "tmp"),
		AlwaysSkip: MustExclusionTable("dev", "proc", "sys"),
		UsersDir:   "home",
	}

	// DarwinProfile is used on macOS
	DarwinProfile = PlatformProfile{
		Name:       "darwin",
		Root:       "/",
		DirNames:   unixDirNames,
		TopLevel:   MustExclusionTable("System", "Volumes", "boot", "dev", "opt", "tmp"),
		AlwaysSkip: MustExclusionTable("System", "Volumes", "dev"),
		UsersDir:   "Users",
	}

	// WindowsProfile is used on Windows
	WindowsProfile = PlatformProfile{
		Name:     "windows",
		Root:     `C:\`,
		TopLevel: MustExclusionTable("Program Files", "Program Files (x86)", "Windows"),
		UsersDir: "Users",
	}

	// OtherProfile has no exclusions
	OtherProfile = PlatformProfile{
		Name: "other",
		Root: "/",
	}

	profiles = map[string]PlatformProfile{
		LinuxProfile.Name:   LinuxProfile,
		DarwinProfile.Name:  DarwinProfile,
		WindowsProfile.Name: WindowsProfile,
		OtherProfile.Name:   OtherProfile,
	}
)

func init() {
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			panic(err)
		}
	}
}

// Validate checks table ordering and that AlwaysSkip is a strict subset of TopLevel
func (p PlatformProfile) Validate() error {
	for _, table := range []ExclusionTable{p.DirNames, p.TopLevel, p.AlwaysSkip} {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("profile %s: %w", p.Name, err)
		}
	}
	if p.TopLevel.Len() > 0 {
		if p.AlwaysSkip.Len() >= p.TopLevel.Len() || !p.AlwaysSkip.subsetOf(p.TopLevel) {
			return fmt.Errorf("%w: %s always-skip set must be a strict subset of the top-level set", ErrInvalidProfile, p.Name)
		}
	} else if p.AlwaysSkip.Len() > 0 {
		return fmt.Errorf("%w: %s has an always-skip set without a top-level set", ErrInvalidProfile, p.Name)
	}
	return nil
}

// ProfileFor returns the profile for a GOOS value
func ProfileFor(goos string) PlatformProfile {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return LinuxProfile
	case "darwin":
		return DarwinProfile
	case "windows":
		p := WindowsProfile
		if drive := os.Getenv("SystemDrive"); drive != "" {
			p.Root = drive + `\`
		}
		return p
	default:
		return OtherProfile
	}
}

// CurrentProfile returns the profile for the running operating system
func CurrentProfile() PlatformProfile {
	return ProfileFor(runtime.GOOS)
}

// LookupProfile returns a profile by name; an empty name selects the current one
func LookupProfile(name string) (PlatformProfile, error) {
	if name == "" {
		return CurrentProfile(), nil
	}
	p, ok := profiles[name]
	if !ok {
		return PlatformProfile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	if name == WindowsProfile.Name {
		return ProfileFor("windows"), nil
	}
	return p, nil
}

// ProfileNames lists the known profile names
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
