package theory

// ScaleDegree is one position of a seven-note diatonic scale.
type ScaleDegree struct {
	Number     int    `json:"degreeNumber"`
	Note       string `json:"note"`
	DegreeName string `json:"degreeName"`
	Interval   string `json:"interval"`
	IsBlue     bool   `json:"isBlue"`
	BlueNote   string `json:"blueNote,omitempty"`
}

var degreeNames = [7]string{"Tonic", "Supertonic", "Mediant", "Subdominant", "Dominant", "Submediant", "Leading Tone"}

const subtonic = "Subtonic"

// blueDegrees are the 0-based positions (3rd, 5th, 7th) that get a blue-note spelling.
var blueDegrees = []int{2, 4, 6}

// Engine computes key signatures, scales and diatonic chords.
// It holds no state; every call returns freshly allocated values.
type Engine struct{}

// NewEngine creates a theory engine.
func NewEngine() *Engine {
	return &Engine{}
}

// KeySignature resolves the signature of a root in a mode through the mode's
// relative major. Unknown roots degrade to C major.
func (e *Engine) KeySignature(root, mode string) KeySignature {
	m := ResolveMode(mode)
	return parentSignature(m.parentTonic(root), m.Parent)
}

// Scale spells the seven degrees of root in mode. When includeBlueNotes is set,
// the 3rd, 5th and 7th carry the flattened note of the parallel major scale.
func (e *Engine) Scale(root, mode string, includeBlueNotes bool) []ScaleDegree {
	m := ResolveMode(mode)
	notes := modeNotes(root, m)

	scale := make([]ScaleDegree, len(notes))
	for i, note := range notes {
		name, interval := degreeInfo(i, notes)
		scale[i] = ScaleDegree{
			Number:     i + 1,
			Note:       note,
			DegreeName: name,
			Interval:   interval,
		}
	}

	if includeBlueNotes {
		major := parentNotes(root, ParentMajor)
		for _, i := range blueDegrees {
			scale[i].IsBlue = true
			scale[i].BlueNote = Flatten(major[i])
		}
	}
	return scale
}

// MajorScale spells the major scale on root.
func (e *Engine) MajorScale(root string) []string {
	return parentNotes(root, ParentMajor)
}

// modeNotes spells a mode by building its parent scale and rotating it so that
// the first note sits on the root's letter.
func modeNotes(root string, m Mode) []string {
	if m.Degree == 1 {
		return parentNotes(root, m.Parent)
	}
	tonic := m.parentTonic(root)
	var parent []string
	if hasSignature(tonic, m.Parent) {
		parent = parentNotes(tonic, m.Parent)
	} else {
		parent = formulaNotes(tonic, m.Parent)
	}
	rotated := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		rotated = append(rotated, parent[(i+m.Degree-1)%7])
	}
	return rotated
}

// parentNotes walks the seven letters from the tonic's letter and applies the
// parent's signature, then raises the harmonic/melodic minor degrees.
func parentNotes(tonic string, parent Parent) []string {
	sig := parentSignature(tonic, parent)
	start := letterIndex(Letter(tonic))
	if start < 0 {
		start = 0
	}

	notes := make([]string, 7)
	for i := range notes {
		letter := naturalNotes[(start+i)%7]
		if acc, ok := sig.has(letter); ok {
			notes[i] = acc
		} else {
			notes[i] = letter
		}
	}
	for _, idx := range raisedDegrees[parent] {
		notes[idx] = Sharpen(notes[idx])
	}
	return notes
}

// formulaNotes spells a parent scale letter by letter from its semitone formula.
// Only rotated modes reach it, when their parent tonic has no signature entry
// (A# Dorian sits on G# major). A first-degree mode on an unlisted root, such as
// Db minor, still takes the C signature through parentNotes.
func formulaNotes(tonic string, parent Parent) []string {
	start := letterIndex(Letter(tonic))
	if start < 0 {
		start = 0
	}
	pc := ToChromatic(tonic)
	formula := parentFormulas[parent]
	notes := make([]string, 7)
	for i := range notes {
		notes[i] = spell(naturalNotes[(start+i)%7], pc+formula[i])
	}
	return notes
}

// degreeInfo names a degree and labels its interval above the tonic from the
// spelled notes, so raised and lowered degrees are labelled by what they are.
func degreeInfo(i int, notes []string) (string, string) {
	interval := intervalLabel(i, Semitones(notes[i])-Semitones(notes[0]))
	name := degreeNames[i]
	if i == 6 && interval != "M7" {
		name = subtonic
	}
	return name, interval
}

// intervalQualities maps (letter distance, semitones) to a label.
var intervalQualities = [7]map[int]string{
	{0: "Unison"},
	{1: "m2", 2: "M2", 3: "A2"},
	{2: "d3", 3: "m3", 4: "M3"},
	{4: "d4", 5: "P4", 6: "A4"},
	{6: "d5", 7: "P5", 8: "A5"},
	{8: "m6", 9: "M6", 10: "A6"},
	{9: "d7", 10: "m7", 11: "M7"},
}

func intervalLabel(step, semitones int) string {
	if label, ok := intervalQualities[step][mod12(semitones)]; ok {
		return label
	}
	return intervalQualities[step][[7]int{0, 2, 4, 5, 7, 9, 11}[step]]
}
