package theory

import "sort"

// AccidentalType is the direction of a key signature.
type AccidentalType string

const (
	AccidentalSharp AccidentalType = "sharp"
	AccidentalFlat  AccidentalType = "flat"
)

// KeySignature describes a major key reference point.
// Accidentals are listed in the standard order of addition.
type KeySignature struct {
	Type        AccidentalType `json:"type"`
	Count       int            `json:"count"`
	Accidentals []string       `json:"accidentals"`
}

// Clone returns a copy that shares no memory with the receiver.
func (k KeySignature) Clone() KeySignature {
	out := k
	out.Accidentals = append([]string{}, k.Accidentals...)
	return out
}

// has reports the accidental entry for a natural letter, if the signature alters it.
func (k KeySignature) has(letter string) (string, bool) {
	for _, acc := range k.Accidentals {
		if Letter(acc) == letter {
			return acc, true
		}
	}
	return "", false
}

const fallbackKey = "C"

var sharpOrder = []string{"F#", "C#", "G#", "D#", "A#", "E#", "B#"}
var flatOrder = []string{"Bb", "Eb", "Ab", "Db", "Gb", "Cb", "Fb"}

var majorKeys = map[string]KeySignature{
	"C":  {Type: AccidentalSharp, Count: 0, Accidentals: []string{}},
	"G":  sharpKey(1),
	"D":  sharpKey(2),
	"A":  sharpKey(3),
	"E":  sharpKey(4),
	"B":  sharpKey(5),
	"F#": sharpKey(6),
	"C#": sharpKey(7),
	"F":  flatKey(1),
	"Bb": flatKey(2),
	"Eb": flatKey(3),
	"Ab": flatKey(4),
	"Db": flatKey(5),
	"Gb": flatKey(6),
	"Cb": flatKey(7),
}

// relativeMajors maps a minor tonic to the major key sharing its signature.
var relativeMajors = map[string]string{
	"A": "C", "E": "G", "B": "D", "F#": "A", "C#": "E", "G#": "B", "D#": "F#", "A#": "C#",
	"D": "F", "G": "Bb", "C": "Eb", "F": "Ab", "Bb": "Db", "Eb": "Gb", "Ab": "Cb",
}

func sharpKey(count int) KeySignature {
	return KeySignature{Type: AccidentalSharp, Count: count, Accidentals: append([]string{}, sharpOrder[:count]...)}
}

func flatKey(count int) KeySignature {
	return KeySignature{Type: AccidentalFlat, Count: count, Accidentals: append([]string{}, flatOrder[:count]...)}
}

// MajorKeyRoots lists the 15 spelled roots that carry a key signature, sorted.
func MajorKeyRoots() []string {
	roots := make([]string, 0, len(majorKeys))
	for root := range majorKeys {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

// RelativeMajor returns the major key sharing a minor tonic's signature.
func RelativeMajor(minorRoot string) (string, bool) {
	major, ok := relativeMajors[minorRoot]
	return major, ok
}

// majorKeySignature looks up a major key, degrading to C major for unknown roots.
func majorKeySignature(root string) KeySignature {
	if sig, ok := majorKeys[root]; ok {
		return sig.Clone()
	}
	return majorKeys[fallbackKey].Clone()
}

// minorKeySignature resolves a minor tonic through its relative major.
func minorKeySignature(root string) KeySignature {
	major, ok := relativeMajors[root]
	if !ok {
		return majorKeys[fallbackKey].Clone()
	}
	return majorKeySignature(major)
}

// parentSignature returns the signature used to spell a parent scale on tonic.
// Harmonic and melodic minor raise degrees as per-note accidentals, not in the signature.
func parentSignature(tonic string, parent Parent) KeySignature {
	if parent == ParentMajor {
		return majorKeySignature(tonic)
	}
	return minorKeySignature(tonic)
}

// hasSignature reports whether tonic has its own table entry for parent.
func hasSignature(tonic string, parent Parent) bool {
	if parent == ParentMajor {
		_, ok := majorKeys[tonic]
		return ok
	}
	_, ok := relativeMajors[tonic]
	return ok
}
