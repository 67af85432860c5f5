package hrirdb

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Placement is one direction a measurement file is stored at.
type Placement struct {
	Elevation float64
	Azimuth   float64
	SwapLR    bool
}

// LocationParser maps a file path to its placements. ok is false for files
// that are not part of the database.
type LocationParser func(path string) (placements []Placement, ok bool)

var layouts = map[string]LocationParser{
	"mit":   ParseMITName,
	"ircam": ParseIRCAMName,
}

// Layouts returns the names of the built-in parsers.
func Layouts() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LayoutByName returns a built-in parser.
func LayoutByName(name string) (LocationParser, error) {
	p, ok := layouts[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("hrirdb: unknown layout %q (want one of %s)", name, strings.Join(Layouts(), ", "))
	}
	return p, nil
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ParseMITName parses the MIT KEMAR compact naming "H<elev>e<azim>a.wav".
// The compact set holds one side of the head, so every file is stored at
// -azim and, mirrored with swapped channels, at +azim. Files at 0 and 180
// degrees are not mirrored.
func ParseMITName(path string) ([]Placement, bool) {
	name := baseName(path)
	if !strings.HasPrefix(name, "H") || !strings.HasSuffix(name, "a") {
		return nil, false
	}

	elev, azim, found := strings.Cut(name[1:len(name)-1], "e")
	if !found {
		return nil, false
	}
	e, err := strconv.Atoi(elev)
	if err != nil {
		return nil, false
	}
	a, err := strconv.Atoi(azim)
	if err != nil {
		return nil, false
	}

	placements := []Placement{{Elevation: float64(e), Azimuth: float64(-a)}}
	if a != 0 && a != 180 {
		placements = append(placements, Placement{Elevation: float64(e), Azimuth: float64(a), SwapLR: true})
	}
	return placements, true
}

// ParseIRCAMName parses the IRCAM Listen naming
// "IRC_<subject>_<status>_R<radius>_T<azimuth>_P<elevation>.wav". Polar
// angles above 180 are negative elevations.
func ParseIRCAMName(path string) ([]Placement, bool) {
	parts := strings.Split(baseName(path), "_")
	if len(parts) != 6 || parts[0] != "IRC" {
		return nil, false
	}

	field := func(s string, prefix byte) (int, bool) {
		if len(s) < 2 || s[0] != prefix {
			return 0, false
		}
		v, err := strconv.Atoi(s[1:])
		if err != nil || v < 0 {
			return 0, false
		}
		return v, true
	}

	if _, ok := field(parts[3], 'R'); !ok {
		return nil, false
	}
	a, ok := field(parts[4], 'T')
	if !ok {
		return nil, false
	}
	e, ok := field(parts[5], 'P')
	if !ok {
		return nil, false
	}
	if e > 180 {
		e -= 360
	}

	return []Placement{{Elevation: float64(e), Azimuth: float64(a)}}, true
}
