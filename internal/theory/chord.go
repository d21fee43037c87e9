package theory

import (
	"fmt"
	"strings"
)

// TensionMask selects which extensions the chord generator should add.
type TensionMask struct {
	Seventh    bool `json:"7"`
	Ninth      bool `json:"9"`
	Eleventh   bool `json:"11"`
	Thirteenth bool `json:"13"`
}

// Preset tension masks.
var (
	BasicTensions = TensionMask{Seventh: true}
	JazzTensions  = TensionMask{Seventh: true, Ninth: true, Thirteenth: true}
	AllTensions   = TensionMask{Seventh: true, Ninth: true, Eleventh: true, Thirteenth: true}
)

// TensionMaskFrom builds a mask from a list of degrees such as [7 9 13].
// Unrecognised degrees are ignored.
func TensionMaskFrom(degrees []int) TensionMask {
	var mask TensionMask
	for _, d := range degrees {
		switch d {
		case 7:
			mask.Seventh = true
		case Ninth:
			mask.Ninth = true
		case Eleventh:
			mask.Eleventh = true
		case Thirteenth:
			mask.Thirteenth = true
		}
	}
	return mask
}

// ChordSymbol is a bare root + quality pair such as Db7.
type ChordSymbol struct {
	Root    string `json:"root"`
	Quality string `json:"quality"`
}

func (s ChordSymbol) String() string {
	return s.Root + s.Quality
}

// GuideTones are the 3rd and 7th that define a chord's colour.
type GuideTones struct {
	Third   string `json:"third"`
	Seventh string `json:"seventh,omitempty"`
}

// Chord is a diatonic or reharmonized chord.
type Chord struct {
	Degree              int          `json:"degree"`
	Roman               string       `json:"roman"`
	Name                string       `json:"name"`
	Root                string       `json:"root"`
	Quality             string       `json:"quality"`
	Notes               []string     `json:"notes"`
	Tensions            []string     `json:"tensions,omitempty"`
	Function            Function     `json:"function"`
	AvoidNotes          []int        `json:"avoidNotes"`
	SecondaryDominant   *ChordSymbol `json:"secondaryDominant,omitempty"`
	GuideTones          GuideTones   `json:"guideTones"`
	IIVIRole            string       `json:"iiVI,omitempty"`
	Key                 string       `json:"key,omitempty"`
	TritoneSubstituteOf string       `json:"tritoneSubstituteOf,omitempty"`
	IsTritoneSubstitute bool         `json:"isTritoneSubstitute,omitempty"`
	IsModalInterchange  bool         `json:"isModalInterchange,omitempty"`
}

// Clone returns a structural copy sharing no slices or pointers with c.
func (c Chord) Clone() Chord {
	out := c
	out.Notes = append([]string{}, c.Notes...)
	out.AvoidNotes = append([]int{}, c.AvoidNotes...)
	if c.Tensions != nil {
		out.Tensions = append([]string{}, c.Tensions...)
	}
	if c.SecondaryDominant != nil {
		sd := *c.SecondaryDominant
		out.SecondaryDominant = &sd
	}
	return out
}

// Symbol returns the chord's root and quality.
func (c Chord) Symbol() ChordSymbol {
	return ChordSymbol{Root: c.Root, Quality: c.Quality}
}

// AnalysisString formats the chord with a functional label, e.g. "F#7 (V7/IV)".
func (c Chord) AnalysisString(label string) string {
	return fmt.Sprintf("%s (%s)", c.Name, label)
}

// SecondaryDominantOf returns the dominant seventh a perfect fifth above root,
// or nil for diminished and half-diminished qualities.
func SecondaryDominantOf(root, quality string) *ChordSymbol {
	if IsDiminished(quality) {
		return nil
	}
	return &ChordSymbol{Root: Transpose(root, 7), Quality: "7"}
}

var romanNumerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// DiatonicChords stacks thirds on every degree of scale and applies the
// tension and avoid-note rules of mode.
func (e *Engine) DiatonicChords(scale []ScaleDegree, mode string, mask TensionMask) []Chord {
	if len(scale) != 7 {
		return []Chord{}
	}
	m := ResolveMode(mode)
	rules := rulesFor(m)
	tonicPC := ToChromatic(scale[0].Note)

	note := func(i, step int) string {
		return scale[(i+step)%7].Note
	}

	chords := make([]Chord, 0, 7)
	for i := range scale {
		rule := rules[i]
		root := note(i, 0)
		notes := []string{root, note(i, 2), note(i, 4)}

		quality := rule.Triad
		if mask.Seventh {
			quality = rule.Seventh
			notes = append(notes, note(i, 6))
		}

		var tensions []string
		if mask.Ninth && rule.Allowed[Ninth] {
			notes = append(notes, note(i, 1))
			tensions = append(tensions, "9")
		}
		if mask.Eleventh {
			switch {
			case rule.Function == FunctionDominant:
				notes = append(notes, Sharpen(note(i, 3)))
				tensions = append(tensions, "#11")
			case rule.Allowed[Eleventh]:
				notes = append(notes, note(i, 3))
				tensions = append(tensions, "11")
			}
		}
		if mask.Thirteenth && rule.Allowed[Thirteenth] {
			notes = append(notes, note(i, 5))
			tensions = append(tensions, "13")
		}

		guide := GuideTones{Third: notes[1]}
		if mask.Seventh {
			guide.Seventh = notes[3]
		}

		chords = append(chords, Chord{
			Degree:            i + 1,
			Roman:             romanFor(i, root, quality, tonicPC),
			Name:              root + quality + tensionSuffix(tensions),
			Root:              root,
			Quality:           quality,
			Notes:             notes,
			Tensions:          tensions,
			Function:          rule.Function,
			AvoidNotes:        append([]int{}, rule.Avoid...),
			SecondaryDominant: SecondaryDominantOf(root, quality),
			GuideTones:        guide,
			IIVIRole:          iiVIRole(m, i),
		})
	}
	return chords
}

func tensionSuffix(tensions []string) string {
	var b strings.Builder
	for _, t := range tensions {
		b.WriteString("(" + t + ")")
	}
	return b.String()
}

// romanFor builds the roman numeral: lowercase for minor qualities, ° for
// diminished ones, and a b/# prefix when the degree is altered relative to major.
func romanFor(i int, root, quality string, tonicPC int) string {
	numeral := romanNumerals[i]
	if IsMinorQuality(quality) {
		numeral = strings.ToLower(numeral)
	}
	if IsDiminished(quality) {
		numeral += "°"
	}

	majorPC := tonicPC + parentFormulas[ParentMajor][i]
	switch mod12(ToChromatic(root) - majorPC) {
	case 11:
		numeral = "b" + numeral
	case 1:
		numeral = "#" + numeral
	}
	return numeral
}

func iiVIRole(m Mode, i int) string {
	if m.Parent != ParentMajor || m.Degree != 1 {
		return ""
	}
	switch i {
	case 0:
		return "I"
	case 1:
		return "ii"
	case 4:
		return "V"
	}
	return ""
}
