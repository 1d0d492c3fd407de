package lrge

import "strings"

// Platform identifies the sequencing technology used to produce the reads,
// which in turn selects the minimap2 all-vs-all preset.
type Platform int

const (
	// Nanopore selects the "ava-ont" minimap2 preset. This is the default.
	Nanopore Platform = iota
	// PacBio selects the "ava-pb" minimap2 preset.
	PacBio
)

// String implements fmt.Stringer.
func (p Platform) String() string {
	switch p {
	case PacBio:
		return "pb"
	default:
		return "ont"
	}
}

// Preset returns the minimap2 preset name associated with the platform.
func (p Platform) Preset() string {
	switch p {
	case PacBio:
		return "ava-pb"
	default:
		return "ava-ont"
	}
}

// ParsePlatform parses the CLI-facing platform strings ("ont", "pb").
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ont", "":
		return Nanopore, nil
	case "pb":
		return PacBio, nil
	default:
		return Nanopore, NewError(BadConfig, "unknown platform %q, expected one of: ont, pb", s)
	}
}
