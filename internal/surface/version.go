package surface

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedVersion means no capability set exists for the host version.
var ErrUnsupportedVersion = errors.New("unsupported host version")

// Version is a host release line, ordered oldest first.
type Version int

const (
	V1_8 Version = iota + 8
	V1_9
	V1_10
	V1_11
	V1_12
	V1_13
	V1_14
	V1_15
	V1_16
	V1_17
	V1_18
	V1_19
	V1_20
	V1_21
)

// ParseVersion reads "1.20", "1.20.4" or "v1_20" style strings.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v")
	raw = strings.ReplaceAll(raw, "_", ".")
	parts := strings.Split(raw, ".")
	if len(parts) < 2 || parts[0] != "1" {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
	v := Version(minor)
	if !v.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
	return v, nil
}

// Valid reports whether v is a known release line.
func (v Version) Valid() bool {
	return v >= V1_8 && v <= V1_21
}

// LessThan compares release lines.
func (v Version) LessThan(other Version) bool {
	return v < other
}

func (v Version) String() string {
	return "1." + strconv.Itoa(int(v))
}
