package theory

import (
	"regexp"
	"sort"
	"strings"
)

// ScaleFormulas holds the chord-scale library as semitone offsets from the root.
var ScaleFormulas = map[string][]int{
	"Ionian":     {0, 2, 4, 5, 7, 9, 11},
	"Dorian":     {0, 2, 3, 5, 7, 9, 10},
	"Phrygian":   {0, 1, 3, 5, 7, 8, 10},
	"Lydian":     {0, 2, 4, 6, 7, 9, 11},
	"Mixolydian": {0, 2, 4, 5, 7, 9, 10},
	"Aeolian":    {0, 2, 3, 5, 7, 8, 10},
	"Locrian":    {0, 1, 3, 5, 6, 8, 10},

	"Natural Minor":  {0, 2, 3, 5, 7, 8, 10},
	"Harmonic Minor": {0, 2, 3, 5, 7, 8, 11},
	"Melodic Minor":  {0, 2, 3, 5, 7, 9, 11},

	"Dorian b2":        {0, 1, 3, 5, 7, 9, 10},
	"Lydian Augmented": {0, 2, 4, 6, 8, 9, 11},
	"Lydian Dominant":  {0, 2, 4, 6, 7, 9, 10},
	"Mixolydian b6":    {0, 2, 4, 5, 7, 8, 10},
	"Locrian #2":       {0, 2, 3, 5, 6, 8, 10},
	"Altered":          {0, 1, 3, 4, 6, 8, 10},

	"Whole Tone":    {0, 2, 4, 6, 8, 10},
	"Diminished WH": {0, 2, 3, 5, 6, 8, 9, 11},
	"Diminished HW": {0, 1, 3, 4, 6, 7, 9, 10},

	"Major Bebop":    {0, 2, 4, 5, 7, 8, 9, 11},
	"Dominant Bebop": {0, 2, 4, 5, 7, 9, 10, 11},
	"Minor Bebop":    {0, 2, 3, 5, 7, 9, 10, 11},

	"Major Pentatonic": {0, 2, 4, 7, 9},
	"Minor Pentatonic": {0, 3, 5, 7, 10},
	"Blues":            {0, 3, 5, 6, 7, 10},
	"Mixolydian Blues": {0, 2, 3, 4, 5, 6, 7, 9, 10},
}

// ScaleInfo describes where a library scale comes from and what it is played over.
type ScaleInfo struct {
	Parent string   `json:"parent"`
	Degree int      `json:"degree,omitempty"`
	Chords []string `json:"chords"`
	Avoid  []int    `json:"avoid"`
	Color  string   `json:"color"`
}

var scaleInfo = map[string]ScaleInfo{
	"Ionian":          {Parent: "Major", Degree: 1, Chords: []string{"maj7", "maj9", "maj13"}, Avoid: []int{4}, Color: "Bright, stable, resolved"},
	"Dorian":          {Parent: "Major", Degree: 2, Chords: []string{"m7", "m9", "m11", "m13"}, Avoid: []int{}, Color: "Sophisticated minor, jazzy"},
	"Phrygian":        {Parent: "Major", Degree: 3, Chords: []string{"m7", "m7b9"}, Avoid: []int{2, 6}, Color: "Dark, Spanish, exotic"},
	"Lydian":          {Parent: "Major", Degree: 4, Chords: []string{"maj7#11", "maj9#11"}, Avoid: []int{}, Color: "Dreamy, floating, ethereal"},
	"Mixolydian":      {Parent: "Major", Degree: 5, Chords: []string{"7", "9", "13"}, Avoid: []int{4}, Color: "Bluesy dominant, relaxed"},
	"Aeolian":         {Parent: "Major", Degree: 6, Chords: []string{"m7", "m9", "m11"}, Avoid: []int{6}, Color: "Natural minor, melancholic"},
	"Locrian":         {Parent: "Major", Degree: 7, Chords: []string{"m7b5", "ø7"}, Avoid: []int{2}, Color: "Unstable, diminished base"},
	"Melodic Minor":   {Parent: "Melodic Minor", Degree: 1, Chords: []string{"mMaj7", "mMaj9"}, Avoid: []int{}, Color: "Jazz minor, ascending tension"},
	"Lydian Dominant": {Parent: "Melodic Minor", Degree: 4, Chords: []string{"7#11", "9#11", "13#11"}, Avoid: []int{}, Color: "Bright dominant tension"},
	"Altered":         {Parent: "Melodic Minor", Degree: 7, Chords: []string{"7alt", "7b9#9", "7b5#5"}, Avoid: []int{}, Color: "Maximum tension, outside"},
	"Locrian #2":      {Parent: "Melodic Minor", Degree: 6, Chords: []string{"m7b5", "ø9"}, Avoid: []int{}, Color: "Half-dim with usable 9th"},
	"Diminished HW":   {Parent: "Symmetric", Chords: []string{"7b9", "7#9", "7#11", "13b9"}, Avoid: []int{}, Color: "Dominant with all alterations"},
	"Whole Tone":      {Parent: "Symmetric", Chords: []string{"7#5", "7b5", "aug"}, Avoid: []int{}, Color: "Floating, impressionistic"},
}

// LookupScaleInfo returns a copy of the library entry for a scale.
func LookupScaleInfo(name string) (ScaleInfo, bool) {
	info, ok := scaleInfo[name]
	if !ok {
		return ScaleInfo{}, false
	}
	info.Chords = append([]string{}, info.Chords...)
	info.Avoid = append([]int{}, info.Avoid...)
	return info, true
}

// AvoidNoteType classifies a scale degree against the chord it is played over.
type AvoidNoteType string

const (
	AvoidNote   AvoidNoteType = "avoid"
	ColorNote   AvoidNoteType = "color"
	PassingNote AvoidNoteType = "passing"
)

// AvoidNoteEntry explains one scale degree's treatment.
type AvoidNoteEntry struct {
	Type        AvoidNoteType `json:"type"`
	Reason      string        `json:"reason"`
	Alternative AvoidNoteType `json:"alternative,omitempty"`
}

var avoidNoteConfig = map[string]map[int]AvoidNoteEntry{
	"Ionian": {4: {Type: AvoidNote, Reason: "b9 against major 3rd"}},
	"Dorian": {6: {Type: ColorNote, Reason: "Tritone between 3rd and 6th on m7", Alternative: AvoidNote}},
	"Phrygian": {
		2: {Type: AvoidNote, Reason: "b9 = root conflict"},
		6: {Type: AvoidNote, Reason: "b13 clashes with 5th"},
	},
	"Mixolydian": {4: {Type: AvoidNote, Reason: "b9 against major 3rd"}},
	"Aeolian":    {6: {Type: AvoidNote, Reason: "b13 clashes with 5th"}},
	"Locrian":    {2: {Type: AvoidNote, Reason: "b9 against root"}},
}

// AvoidNoteConfig returns the per-degree avoid/colour notes of a mode.
func AvoidNoteConfig(mode string) map[int]AvoidNoteEntry {
	out := make(map[int]AvoidNoteEntry)
	for degree, entry := range avoidNoteConfig[mode] {
		out[degree] = entry
	}
	return out
}

var modeAliases = map[string][]string{
	"Dorian b2":        {"Phrygian ♮6", "Phrygian #6", "Javanese"},
	"Lydian Augmented": {"Lydian #5"},
	"Lydian Dominant":  {"Overtone Scale", "Lydian ♭7", "Acoustic Scale", "Bartók Scale"},
	"Mixolydian b6":    {"Hindu Scale", "Aeolian Dominant"},
	"Locrian #2":       {"Half-Diminished Scale", "Aeolian b5"},
	"Altered":          {"Super Locrian", "Diminished Whole Tone", "Ravel Scale"},
	"Diminished HW":    {"Octatonic", "Dominant Diminished"},
	"Diminished WH":    {"Octatonic", "Auxiliary Diminished"},
	"Melodic Minor":    {"Jazz Minor", "Ascending Melodic Minor"},
}

// ModeAliases lists alternative names for a scale.
func ModeAliases(name string) []string {
	return append([]string{}, modeAliases[name]...)
}

// chordScaleMap is the available-note-scale chart keyed by normalised quality.
var chordScaleMap = map[string][]string{
	"maj7":    {"Ionian", "Lydian"},
	"maj9":    {"Ionian", "Lydian"},
	"maj7#11": {"Lydian"},
	"6":       {"Ionian", "Lydian"},
	"6/9":     {"Ionian", "Lydian", "Major Pentatonic"},

	"m7":    {"Dorian", "Aeolian", "Phrygian"},
	"m9":    {"Dorian", "Aeolian"},
	"m11":   {"Dorian"},
	"m13":   {"Dorian"},
	"m6":    {"Dorian", "Melodic Minor"},
	"mMaj7": {"Melodic Minor"},

	"7":     {"Mixolydian", "Dominant Bebop", "Mixolydian Blues"},
	"9":     {"Mixolydian"},
	"13":    {"Mixolydian", "Lydian Dominant"},
	"7#11":  {"Lydian Dominant"},
	"7alt":  {"Altered"},
	"7b9":   {"Diminished HW", "Altered"},
	"7#9":   {"Diminished HW", "Altered"},
	"7b5":   {"Whole Tone", "Altered"},
	"7#5":   {"Whole Tone", "Altered"},
	"7sus4": {"Mixolydian"},

	"m7b5": {"Locrian", "Locrian #2"},
	"ø7":   {"Locrian #2"},

	"dim7": {"Diminished WH"},
	"°7":   {"Diminished WH"},
}

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatRoots  = map[string]bool{"F": true, "Bb": true, "Eb": true, "Ab": true, "Db": true, "Gb": true}

	rootPattern  = regexp.MustCompile(`^[A-G][#b]?`)
	parenPattern = regexp.MustCompile(`\(.*\)`)
)

// BuildScale spells a library scale on root. Flat roots and flat keys use flat
// names, everything else sharps. Unknown scale names yield an empty slice.
func BuildScale(root, name string) []string {
	formula, ok := ScaleFormulas[name]
	if !ok {
		return []string{}
	}
	names := sharpNames
	if strings.Contains(root, "b") || flatRoots[root] {
		names = chromaticNames
	}
	rootPC := ToChromatic(root)
	out := make([]string, len(formula))
	for i, interval := range formula {
		out[i] = names[mod12(rootPC+interval)]
	}
	return out
}

// ScaleNames lists every scale in the library, sorted.
func ScaleNames() []string {
	names := make([]string, 0, len(ScaleFormulas))
	for name := range ScaleFormulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseChordSymbol splits a symbol such as "Bbm7(9)" into root and normalised quality.
// Missing roots read as C.
func ParseChordSymbol(symbol string) ChordSymbol {
	root := rootPattern.FindString(symbol)
	if root == "" {
		root = "C"
	}
	quality := strings.Replace(symbol, root, "", 1)

	switch {
	case quality == "" || quality == "M" || quality == "maj":
		quality = "maj7"
	case quality == "m" || quality == "min" || quality == "-":
		quality = "m7"
	case strings.Contains(quality, "alt"):
		quality = "7alt"
	case strings.Contains(quality, "dim") || quality == "°":
		quality = "dim7"
	case strings.Contains(quality, "ø") || strings.Contains(quality, "m7b5"):
		quality = "m7b5"
	default:
		quality = parenPattern.ReplaceAllString(quality, "")
	}
	return ChordSymbol{Root: root, Quality: quality}
}

// AvailableScales returns the chord-scale choices for a chord symbol, Ionian when unknown.
func AvailableScales(symbol string) []string {
	scales, ok := chordScaleMap[ParseChordSymbol(symbol).Quality]
	if !ok {
		return []string{"Ionian"}
	}
	return append([]string{}, scales...)
}

// TensionAvailability lists usable and avoided tensions on a degree.
type TensionAvailability struct {
	Available []int `json:"available"`
	Avoid     []int `json:"avoid"`
}

// TensionInfo reports tension availability for a 1-based degree of mode, read
// from the same rule table the chord generator uses.
func TensionInfo(degree int, mode string) TensionAvailability {
	if degree < 1 || degree > 7 {
		return TensionAvailability{Available: []int{}, Avoid: []int{}}
	}
	rule := rulesFor(ResolveMode(mode))[degree-1]
	out := TensionAvailability{Available: []int{}, Avoid: append([]int{}, rule.Avoid...)}
	for _, t := range []int{Ninth, Eleventh, Thirteenth} {
		if rule.Allowed[t] {
			out.Available = append(out.Available, t)
		}
	}
	return out
}

var characteristicNotes = map[string]string{
	"Dorian":          "6",
	"Phrygian":        "1",
	"Lydian":          "4",
	"Mixolydian":      "7",
	"Aeolian":         "6",
	"Locrian":         "2",
	"Altered":         "all",
	"Lydian Dominant": "4",
}

// CharacteristicNote names the degree that gives a mode its colour.
// Ionian and unknown modes have none.
func CharacteristicNote(mode string) (string, bool) {
	note, ok := characteristicNotes[mode]
	return note, ok
}
