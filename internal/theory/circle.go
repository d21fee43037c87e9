package theory

import "fmt"

var (
	circleMajors = [12]string{"C", "G", "D", "A", "E", "B", "F#", "Db", "Ab", "Eb", "Bb", "F"}
	circleMinors = [12]string{"Am", "Em", "Bm", "F#m", "C#m", "G#m", "D#m", "Bbm", "Fm", "Cm", "Gm", "Dm"}
)

// CircleKey is one position on the circle of fifths.
type CircleKey struct {
	Position      int    `json:"position"`
	Major         string `json:"major"`
	RelativeMinor string `json:"relativeMinor"`
	Accidentals   int    `json:"accidentals"`
}

// RelatedKeys are the neighbours of a key on the circle.
type RelatedKeys struct {
	Key         string `json:"key"`
	Dominant    string `json:"dominant"`
	Subdominant string `json:"subdominant"`
	Relative    string `json:"relative"`
}

// CircleOfFifths lists the twelve major keys clockwise from C.
func CircleOfFifths() []CircleKey {
	out := make([]CircleKey, len(circleMajors))
	for i, major := range circleMajors {
		out[i] = CircleKey{
			Position:      i,
			Major:         major,
			RelativeMinor: circleMinors[i],
			Accidentals:   majorKeys[major].Count,
		}
	}
	return out
}

// circleIndex finds a key on the circle, accepting enharmonic spellings such as Gb or C#.
func circleIndex(key string) int {
	if !IsValidNote(key) {
		return -1
	}
	pc := ToChromatic(key)
	for i, major := range circleMajors {
		if ToChromatic(major) == pc {
			return i
		}
	}
	return -1
}

// LookupRelatedKeys returns the dominant, subdominant and relative minor of key.
func LookupRelatedKeys(key string) (RelatedKeys, bool) {
	idx := circleIndex(key)
	if idx < 0 {
		return RelatedKeys{}, false
	}
	return RelatedKeys{
		Key:         circleMajors[idx],
		Dominant:    circleMajors[(idx+1)%12],
		Subdominant: circleMajors[(idx+11)%12],
		Relative:    circleMinors[idx],
	}, true
}

var keyRelationships = map[int]string{
	0:  "Same key",
	1:  "Dominant (V)",
	2:  "Two fifths away",
	5:  "Tritone (Enharmonic)",
	6:  "bII (Tritone sub)",
	7:  "Parallel minor area",
	11: "Subdominant (IV)",
}

// KeyRelationship describes how far apart two keys sit on the circle.
func KeyRelationship(from, to string) (string, bool) {
	fromIdx, toIdx := circleIndex(from), circleIndex(to)
	if fromIdx < 0 || toIdx < 0 {
		return "", false
	}
	distance := mod12(toIdx - fromIdx)
	if label, ok := keyRelationships[distance]; ok {
		return label, true
	}
	return fmt.Sprintf("%d steps", distance), true
}
