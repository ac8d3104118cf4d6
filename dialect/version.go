package dialect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is an ordered (major, minor, patch) database version triple.
// Comparisons are lexicographic. A dialect's feature set is derived from its
// Version exactly once, at construction; the value is immutable afterwards.
type Version struct {
	Major int
	Minor int
	Patch int
}

// MakeVersion builds a Version from up to three parts. Missing parts are zero.
func MakeVersion(parts ...int) Version {
	var v Version
	if len(parts) > 0 {
		v.Major = parts[0]
	}
	if len(parts) > 1 {
		v.Minor = parts[1]
	}
	if len(parts) > 2 {
		v.Patch = parts[2]
	}
	return v
}

// Compare returns -1, 0, or 1 if v is ordered before, equal to, or after o.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return sign(v.Major - o.Major)
	case v.Minor != o.Minor:
		return sign(v.Minor - o.Minor)
	default:
		return sign(v.Patch - o.Patch)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Before reports whether v is strictly before the given version parts.
// Missing parts are treated as zero, so v.Before(2) means "before 2.0.0".
func (v Version) Before(parts ...int) bool {
	return v.Compare(MakeVersion(parts...)) < 0
}

// AtLeast reports whether v is the same as or after the given version parts.
func (v Version) AtLeast(parts ...int) bool {
	return v.Compare(MakeVersion(parts...)) >= 0
}

// Is reports whether v matches the given parts exactly, to the granularity
// given: Is(2) matches any 2.x.y, Is(1, 4) any 1.4.y, Is(1, 4, 200) only
// 1.4.200.
func (v Version) Is(parts ...int) bool {
	if len(parts) > 0 && v.Major != parts[0] {
		return false
	}
	if len(parts) > 1 && v.Minor != parts[1] {
		return false
	}
	if len(parts) > 2 && v.Patch != parts[2] {
		return false
	}
	return len(parts) > 0
}

// String returns the dotted form of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// crdbBannerRe matches the version embedded in a CockroachDB banner string,
// e.g. "CockroachDB CCL v21.2.10 (x86_64-unknown-linux-gnu, ...)".
var crdbBannerRe = regexp.MustCompile(`v\d+(\.\d+)?(\.\d+)?`)

// pgBannerRe matches the version in a PostgreSQL banner string, e.g.
// "PostgreSQL 15.4 on x86_64-pc-linux-gnu, compiled by gcc ...".
var pgBannerRe = regexp.MustCompile(`PostgreSQL (\d+)(\.\d+)?(\.\d+)?`)

// ParseCockroachBanner extracts the server version from the free-text banner
// returned by SELECT version(). It reports false when no version is embedded.
func ParseCockroachBanner(banner string) (Version, bool) {
	m := crdbBannerRe.FindString(banner)
	if m == "" {
		return Version{}, false
	}
	return parseDotted(m[1:]), true
}

// ParsePostgresBanner extracts the server version from the free-text banner
// returned by SELECT version(). It reports false when no version is embedded.
func ParsePostgresBanner(banner string) (Version, bool) {
	m := pgBannerRe.FindStringSubmatch(banner)
	if m == nil {
		return Version{}, false
	}
	return parseDotted(strings.TrimPrefix(m[0], "PostgreSQL ")), true
}

// ParseH2Version parses the version reported by H2, e.g. "2.1.214
// (2022-06-13)" or "1.4.200". The build id is the third dot- or
// space-separated component; a missing component is zero.
func ParseH2Version(reported string) (Version, bool) {
	bits := strings.FieldsFunc(reported, func(r rune) bool { return r == '.' || r == ' ' })
	if len(bits) < 2 {
		return Version{}, false
	}
	major, err := strconv.Atoi(bits[0])
	if err != nil {
		return Version{}, false
	}
	minor, err := strconv.Atoi(bits[1])
	if err != nil {
		return Version{}, false
	}
	v := Version{Major: major, Minor: minor}
	if len(bits) > 2 {
		// Build ids may carry trailing text; tolerate and zero out.
		if patch, err := strconv.Atoi(bits[2]); err == nil {
			v.Patch = patch
		}
	}
	return v, true
}

// parseDotted parses "21.2.10"-style strings, zero-filling missing parts.
// The caller guarantees at least a leading integer.
func parseDotted(s string) Version {
	parts := strings.Split(s, ".")
	v := Version{}
	if len(parts) > 0 {
		v.Major, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		v.Minor, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		v.Patch, _ = strconv.Atoi(parts[2])
	}
	return v
}
