package debugdraw

import (
	"fmt"
	"strings"
)

// Flags selects what a simulation should report.
type Flags uint

const (
	DrawShapes Flags = 1 << iota
	DrawConstraints
	DrawCollisionPoints
	DrawTransforms
	DrawAABBs
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{DrawShapes, "shapes"},
	{DrawConstraints, "constraints"},
	{DrawCollisionPoints, "collision_points"},
	{DrawTransforms, "transforms"},
	{DrawAABBs, "aabbs"},
}

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

func (f Flags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseFlags converts flag names as written in config files into Flags.
// Names are case-insensitive; "all" selects every flag.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "all" {
			for _, fn := range flagNames {
				f |= fn.flag
			}
			continue
		}
		found := false
		for _, fn := range flagNames {
			if fn.name == name {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown debug draw flag %q", raw)
		}
	}
	return f, nil
}
