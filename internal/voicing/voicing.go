package voicing

import (
	"fmt"
	"sort"

	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

// Tone is one pitch of a voicing in scientific pitch notation (C4 = middle C).
type Tone struct {
	Note   string `json:"note"`
	Octave int    `json:"octave"`
}

// Pitch returns the MIDI note number (C4 = 60). Cb and B# cross the octave
// boundary the way they are spelled.
func (t Tone) Pitch() int {
	return (t.Octave+1)*12 + theory.Semitones(t.Note)
}

func (t Tone) String() string {
	return fmt.Sprintf("%s%d", t.Note, t.Octave)
}

// Voicing is an ordered set of tones for one chord.
type Voicing []Tone

// Pitches returns the MIDI numbers of every tone in order.
func (v Voicing) Pitches() []int {
	out := make([]int, len(v))
	for i, t := range v {
		out[i] = t.Pitch()
	}
	return out
}

// Default registers for each shape.
const (
	DefaultOctave      = 4
	DefaultShellOctave = 3
	DefaultQuartalSize = 4
)

// toneAt places a semitone offset above root relative to octave. Offsets may be
// negative or exceed an octave.
func toneAt(rootPC, interval, octave int) Tone {
	abs := rootPC + interval
	return Tone{
		Note:   theory.ChromaticName(abs),
		Octave: octave + floorDiv(abs, 12),
	}
}

func place(root string, intervals []int, octave int) Voicing {
	rootPC := theory.ToChromatic(root)
	v := make(Voicing, len(intervals))
	for i, interval := range intervals {
		v[i] = toneAt(rootPC, interval, octave)
	}
	return v
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// toneOr returns tones[i], or fallback when the quality has no such tone.
func toneOr(tones []int, i, fallback int) int {
	if i < len(tones) {
		return tones[i]
	}
	return fallback
}

// ninth reads the 9th from the quality's fifth entry or estimates it from the 3rd.
func ninth(tones []int) int {
	if len(tones) > 4 {
		return tones[4] % 24
	}
	return (tones[1] + 10) % 24
}

// Close stacks the quality's intervals upward from root.
func Close(root, quality string, octave int) Voicing {
	return place(root, theory.Intervals(quality), octave)
}

// Shell is root, 3rd and 7th (the 5th when the quality has no 7th).
func Shell(root, quality string, octave int) Voicing {
	tones := theory.Intervals(quality)
	return place(root, []int{tones[0], tones[1], toneOr(tones, 3, tones[2])}, octave)
}

// RootlessA is 3-5-7-9 with the 3rd on the bottom.
func RootlessA(root, quality string, octave int) Voicing {
	tones := theory.Intervals(quality)
	return place(root, []int{
		tones[1],
		toneOr(tones, 2, 7),
		toneOr(tones, 3, 10),
		ninth(tones),
	}, octave)
}

// RootlessB is 7-9-3-5 with the 7th on the bottom.
func RootlessB(root, quality string, octave int) Voicing {
	tones := theory.Intervals(quality)
	return place(root, []int{
		toneOr(tones, 3, 10),
		ninth(tones),
		tones[1] + 12,
		toneOr(tones, 2, 7) + 12,
	}, octave)
}

// Drop2 drops the second voice from the top of a four-note close voicing by an
// octave. Three-note qualities are padded with the root an octave up.
func Drop2(root, quality string, octave int) Voicing {
	tones := theory.Intervals(quality)
	closed := tones
	if len(closed) > 4 {
		closed = closed[:4]
	}
	if len(closed) < 4 {
		closed = append(closed, closed[0]+12)
	}

	dropped := []int{closed[2] - 12, closed[0], closed[1], closed[3]}
	sort.Ints(dropped)
	return place(root, dropped, octave)
}

// Quartal stacks size perfect fourths from root regardless of quality.
// Sizes below one use the default of four.
func Quartal(root string, octave, size int) Voicing {
	if size < 1 {
		size = DefaultQuartalSize
	}
	intervals := make([]int, size)
	for i := range intervals {
		intervals[i] = i * 5
	}
	return place(root, intervals, octave)
}

// UpperStructure puts a triad on triadRoot an octave above the 3rd and b7 of a
// dominant on root.
func UpperStructure(root, triadRoot string, minorTriad bool, octave int) Voicing {
	rootPC := theory.ToChromatic(root)
	v := Voicing{
		{Note: theory.ChromaticName(rootPC + 4), Octave: octave},
		{Note: theory.ChromaticName(rootPC + 10), Octave: octave},
	}

	triad := []int{0, 4, 7}
	if minorTriad {
		triad = []int{0, 3, 7}
	}
	triadPC := theory.ToChromatic(triadRoot)
	for _, interval := range triad {
		v = append(v, Tone{Note: theory.ChromaticName(triadPC + interval), Octave: octave + 1})
	}
	return v
}

// Set holds every standard shape for one chord.
type Set struct {
	Shell     Voicing `json:"shell"`
	RootlessA Voicing `json:"rootlessA"`
	RootlessB Voicing `json:"rootlessB"`
	Drop2     Voicing `json:"drop2"`
	Quartal   Voicing `json:"quartal"`
}

// All builds every shape at its default register.
func All(root, quality string) Set {
	return Set{
		Shell:     Shell(root, quality, DefaultShellOctave),
		RootlessA: RootlessA(root, quality, DefaultOctave),
		RootlessB: RootlessB(root, quality, DefaultOctave),
		Drop2:     Drop2(root, quality, DefaultOctave),
		Quartal:   Quartal(root, DefaultOctave, DefaultQuartalSize),
	}
}

// Hands is a voicing split between the two hands.
type Hands struct {
	LeftHand  Voicing `json:"leftHand"`
	RightHand Voicing `json:"rightHand"`
}

// TwoHand puts a shell in the left hand an octave down and the rootless A
// shape, minus its doubled 3rd, in the right.
func TwoHand(root, quality string, octave int) Hands {
	return Hands{
		LeftHand:  Shell(root, quality, octave-1),
		RightHand: RootlessA(root, quality, octave)[1:],
	}
}

// NoteNames formats a voicing as note+octave strings such as "C4".
func NoteNames(v Voicing) []string {
	out := make([]string, len(v))
	for i, t := range v {
		out[i] = t.String()
	}
	return out
}
