package theory

import "strings"

// naturalNotes is the letter cycle every diatonic scale walks through.
var naturalNotes = [7]string{"C", "D", "E", "F", "G", "A", "B"}

// chromaticNames is the fixed spelling table used by all pitch arithmetic.
// Black keys are always spelled with flats; reharmonized chords are not respelled per key.
var chromaticNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var letterSemitones = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

// SplitNote separates a spelled note into its letter and accidental suffix.
// "Bbb" -> ("B", "bb"), "F#" -> ("F", "#").
func SplitNote(note string) (string, string) {
	if note == "" {
		return "", ""
	}
	return strings.ToUpper(note[:1]), note[1:]
}

// Letter returns the natural letter of a note, or "" when the note is empty.
func Letter(note string) string {
	letter, _ := SplitNote(note)
	return letter
}

// accidentalOffset counts the semitone shift carried by an accidental suffix.
func accidentalOffset(accidental string) int {
	offset := strings.Count(accidental, "#")
	offset += 2 * strings.Count(accidental, "x")
	offset -= strings.Count(accidental, "b")
	return offset
}

// Semitones returns the unreduced semitone position of a note relative to C of
// the same octave, so "Cb" is -1 and "B#" is 12. Unknown letters count as C.
func Semitones(note string) int {
	letter, accidental := SplitNote(note)
	return letterSemitones[letter] + accidentalOffset(accidental)
}

// ToChromatic maps a spelled note to its pitch class (0-11).
func ToChromatic(note string) int {
	return mod12(Semitones(note))
}

// ChromaticName returns the table spelling for a pitch class; any integer is accepted.
func ChromaticName(pitchClass int) string {
	return chromaticNames[mod12(pitchClass)]
}

// Transpose moves a note by the given number of semitones and respells it from
// the chromatic table.
func Transpose(note string, semitones int) string {
	return ChromaticName(ToChromatic(note) + semitones)
}

// IsValidNote reports whether the note has a letter A-G and only #, x or b accidentals.
func IsValidNote(note string) bool {
	letter, accidental := SplitNote(note)
	if _, ok := letterSemitones[letter]; !ok {
		return false
	}
	return strings.Trim(accidental, "#xb") == ""
}

// Sharpen raises a note by one accidental level.
// A double sharp is the ceiling and is returned unchanged.
func Sharpen(note string) string {
	letter, acc := SplitNote(note)
	switch {
	case strings.Contains(acc, "bb"):
		acc = strings.Replace(acc, "bb", "b", 1)
	case strings.Contains(acc, "b"):
		acc = strings.Replace(acc, "b", "", 1)
	case strings.Contains(acc, "x"):
	case strings.Contains(acc, "#"):
		acc = strings.Replace(acc, "#", "x", 1)
	default:
		acc += "#"
	}
	return letter + acc
}

// Flatten lowers a note by one accidental level.
// A double flat is the floor and is returned unchanged.
func Flatten(note string) string {
	letter, acc := SplitNote(note)
	switch {
	case strings.Contains(acc, "x"):
		acc = strings.Replace(acc, "x", "#", 1)
	case strings.Contains(acc, "##"):
		acc = strings.Replace(acc, "##", "#", 1)
	case strings.Contains(acc, "#"):
		acc = strings.Replace(acc, "#", "", 1)
	case strings.Contains(acc, "bb"):
	case strings.Contains(acc, "b"):
		acc = strings.Replace(acc, "b", "bb", 1)
	default:
		acc += "b"
	}
	return letter + acc
}

// spell returns the spelling of pitch class pc on the given letter, using up to
// two accidentals in either direction.
func spell(letter string, pc int) string {
	diff := mod12(pc-letterSemitones[letter]+6) - 6
	switch diff {
	case -2:
		return letter + "bb"
	case -1:
		return letter + "b"
	case 1:
		return letter + "#"
	case 2:
		return letter + "x"
	default:
		return letter
	}
}

var enharmonics = map[string]string{
	"C#": "Db", "Db": "C#",
	"D#": "Eb", "Eb": "D#",
	"F#": "Gb", "Gb": "F#",
	"G#": "Ab", "Ab": "G#",
	"A#": "Bb", "Bb": "A#",
	"B": "Cb", "Cb": "B",
	"E": "Fb", "Fb": "E",
	"B#": "C", "C": "B#",
	"E#": "F", "F": "E#",
}

// Enharmonic returns the common alternate spelling of a note, or the note itself.
func Enharmonic(note string) string {
	if alt, ok := enharmonics[note]; ok {
		return alt
	}
	return note
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}

func letterIndex(letter string) int {
	for i, n := range naturalNotes {
		if n == letter {
			return i
		}
	}
	return -1
}
