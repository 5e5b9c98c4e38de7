package version

import (
	"fmt"
	"strconv"
	"strings"

	hashiVer "github.com/hashicorp/go-version"

	"github.com/nudgeworks/nudge/nudge/nudgeerr"
)

// Version is an ordered sequence of non-negative integers parsed from a dot-delimited string (e.g. "2.10.0.1").
type Version struct {
	Raw    string
	verObj *hashiVer.Version
	size   int
}

// Parse accepts only dot-delimited decimal segments; prefixes ("v1.2"), pre-release or build suffixes ("1.2-beta",
// "1.2+abc") and empty segments ("1..2") are rejected with nudgeerr.ErrMalformedVersion.
func Parse(raw string) (*Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty version", nudgeerr.ErrMalformedVersion)
	}

	segments := strings.Split(trimmed, ".")
	for idx, segment := range segments {
		if !isNumeric(segment) {
			return nil, fmt.Errorf("%w: %q has a non-numeric segment at index %d", nudgeerr.ErrMalformedVersion, raw, idx)
		}
	}

	verObj, err := hashiVer.NewVersion(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", nudgeerr.ErrMalformedVersion, raw, err)
	}

	return &Version{
		Raw:    trimmed,
		verObj: verObj,
		size:   len(segments),
	}, nil
}

// MustParse is Parse for known-good literals; it panics on error.
func MustParse(raw string) *Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func isNumeric(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Segments returns the numeric components as written (no zero padding).
func (v *Version) Segments() []int64 {
	all := v.verObj.Segments64()
	if len(all) > v.size {
		return all[:v.size]
	}
	return all
}

// Compare returns -1, 0, or 1 when v is less than, equal to, or greater than other. The shorter version is padded
// with zeros, so "1.2" and "1.2.0.0" are equal.
func (v *Version) Compare(other *Version) int {
	return v.verObj.Compare(other.verObj)
}

func (v *Version) Equal(other *Version) bool {
	return v.Compare(other) == 0
}

func (v *Version) LessThan(other *Version) bool {
	return v.Compare(other) < 0
}

func (v *Version) String() string {
	parts := make([]string, 0, v.size)
	for _, s := range v.Segments() {
		parts = append(parts, strconv.FormatInt(s, 10))
	}
	return strings.Join(parts, ".")
}

// padded returns both segment vectors zero-padded to the same length.
func padded(a, b *Version) ([]int64, []int64) {
	as, bs := a.Segments(), b.Segments()
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	return pad(as, n), pad(bs, n)
}

func pad(segments []int64, n int) []int64 {
	out := make([]int64, n)
	copy(out, segments)
	return out
}
