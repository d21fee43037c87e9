package theory

import (
	"sort"
	"strings"
)

// Parent is the seven-note scale a mode is a rotation of.
type Parent int

const (
	ParentMajor Parent = iota
	ParentNaturalMinor
	ParentHarmonicMinor
	ParentMelodicMinor
)

var parentNames = map[Parent]string{
	ParentMajor:         "Major",
	ParentNaturalMinor:  "Natural Minor",
	ParentHarmonicMinor: "Harmonic Minor",
	ParentMelodicMinor:  "Melodic Minor",
}

func (p Parent) String() string {
	return parentNames[p]
}

// parentFormulas are semitone offsets of each parent scale from its tonic.
var parentFormulas = map[Parent][7]int{
	ParentMajor:         {0, 2, 4, 5, 7, 9, 11},
	ParentNaturalMinor:  {0, 2, 3, 5, 7, 8, 10},
	ParentHarmonicMinor: {0, 2, 3, 5, 7, 8, 11},
	ParentMelodicMinor:  {0, 2, 3, 5, 7, 9, 11},
}

// raisedDegrees lists the 0-based degrees a minor parent sharpens on top of the
// natural-minor spelling.
var raisedDegrees = map[Parent][]int{
	ParentHarmonicMinor: {6},
	ParentMelodicMinor:  {5, 6},
}

// Mode identifies a scale as a rotation of a parent scale.
// Degree is the 1-based parent degree the mode starts on.
type Mode struct {
	Name   string `json:"name"`
	Parent Parent `json:"-"`
	Degree int    `json:"degree"`
}

// Minor reports whether the mode is one of the minor-key scales.
func (m Mode) Minor() bool {
	return m.Parent != ParentMajor && m.Degree == 1
}

// Formula returns the semitone offsets of the mode from its own root.
func (m Mode) Formula() [7]int {
	parent := parentFormulas[m.Parent]
	var out [7]int
	for i := range out {
		out[i] = mod12(parent[(i+m.Degree-1)%7] - parent[m.Degree-1])
	}
	return out
}

var (
	modeMajor        = Mode{Name: "Major", Parent: ParentMajor, Degree: 1}
	modeNaturalMinor = Mode{Name: "Natural Minor", Parent: ParentNaturalMinor, Degree: 1}
)

var modes = map[string]Mode{
	"Major":          modeMajor,
	"Minor":          modeNaturalMinor,
	"Natural Minor":  modeNaturalMinor,
	"Harmonic Minor": {Name: "Harmonic Minor", Parent: ParentHarmonicMinor, Degree: 1},
	"Melodic Minor":  {Name: "Melodic Minor", Parent: ParentMelodicMinor, Degree: 1},

	"Ionian":     {Name: "Ionian", Parent: ParentMajor, Degree: 1},
	"Dorian":     {Name: "Dorian", Parent: ParentMajor, Degree: 2},
	"Phrygian":   {Name: "Phrygian", Parent: ParentMajor, Degree: 3},
	"Lydian":     {Name: "Lydian", Parent: ParentMajor, Degree: 4},
	"Mixolydian": {Name: "Mixolydian", Parent: ParentMajor, Degree: 5},
	"Aeolian":    {Name: "Aeolian", Parent: ParentNaturalMinor, Degree: 1},
	"Locrian":    {Name: "Locrian", Parent: ParentMajor, Degree: 7},

	"Dorian b2":        {Name: "Dorian b2", Parent: ParentMelodicMinor, Degree: 2},
	"Lydian Augmented": {Name: "Lydian Augmented", Parent: ParentMelodicMinor, Degree: 3},
	"Lydian Dominant":  {Name: "Lydian Dominant", Parent: ParentMelodicMinor, Degree: 4},
	"Mixolydian b6":    {Name: "Mixolydian b6", Parent: ParentMelodicMinor, Degree: 5},
	"Locrian #2":       {Name: "Locrian #2", Parent: ParentMelodicMinor, Degree: 6},
	"Altered":          {Name: "Altered", Parent: ParentMelodicMinor, Degree: 7},
}

// LookupMode returns the registered mode for a name.
func LookupMode(name string) (Mode, bool) {
	m, ok := modes[name]
	return m, ok
}

// ResolveMode never fails: unregistered names containing "Minor" resolve to
// natural minor, everything else to major.
func ResolveMode(name string) Mode {
	if m, ok := modes[name]; ok {
		return m
	}
	if strings.Contains(name, "Minor") {
		return modeNaturalMinor
	}
	return modeMajor
}

// ModeNames lists every recognised mode string, aliases included.
func ModeNames() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parentTonic spells the tonic of the parent scale that root is degree m.Degree of.
func (m Mode) parentTonic(root string) string {
	if m.Degree == 1 {
		return root
	}
	idx := letterIndex(Letter(root))
	if idx < 0 {
		return fallbackKey
	}
	letter := naturalNotes[(idx-(m.Degree-1)+7)%7]
	pc := ToChromatic(root) - parentFormulas[m.Parent][m.Degree-1]
	return spell(letter, pc)
}
