package progression

import (
	"strings"

	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

const tritoneRoman = "♭II⁷"

// TritoneSubstitute is the dominant seventh a tritone away from root.
func TritoneSubstitute(root string) theory.ChordSymbol {
	return theory.ChordSymbol{Root: theory.Transpose(root, 6), Quality: "7"}
}

// SecondaryDominant is the V7 of target.
func SecondaryDominant(target string) theory.ChordSymbol {
	return theory.ChordSymbol{Root: theory.Transpose(target, 7), Quality: "7"}
}

// RelatedII is the m7 a perfect fourth above dominantRoot.
func RelatedII(dominantRoot string) theory.ChordSymbol {
	return theory.ChordSymbol{Root: theory.Transpose(dominantRoot, 5), Quality: "m7"}
}

// ChordNotes spells a chord from the flat-preferring chromatic table.
// Unknown qualities use maj7.
func ChordNotes(root, quality string) []string {
	intervals := theory.Intervals(quality)
	notes := make([]string, len(intervals))
	for i, interval := range intervals {
		notes[i] = theory.Transpose(root, interval)
	}
	return notes
}

func guideTones(notes []string) theory.GuideTones {
	var g theory.GuideTones
	if len(notes) > 1 {
		g.Third = notes[1]
	}
	if len(notes) > 3 {
		g.Seventh = notes[3]
	}
	return g
}

// symbolChord builds a standalone chord for a root and quality.
func symbolChord(sym theory.ChordSymbol, roman string, fn theory.Function) theory.Chord {
	notes := ChordNotes(sym.Root, sym.Quality)
	return theory.Chord{
		Roman:             roman,
		Name:              sym.String(),
		Root:              sym.Root,
		Quality:           sym.Quality,
		Notes:             notes,
		Function:          fn,
		AvoidNotes:        []int{},
		SecondaryDominant: theory.SecondaryDominantOf(sym.Root, sym.Quality),
		GuideTones:        guideTones(notes),
	}
}

// TritoneSubstituteChord replaces c with the dominant a tritone away. The
// original's degree is kept and tensions are dropped.
func TritoneSubstituteChord(c theory.Chord) theory.Chord {
	sub := symbolChord(TritoneSubstitute(c.Root), tritoneRoman, theory.FunctionDominant)
	sub.Degree = c.Degree
	sub.Key = c.Key
	sub.IsTritoneSubstitute = true
	sub.TritoneSubstituteOf = c.Name
	return sub
}

// BorrowedChord turns c into its m7 counterpart from the parallel minor.
func BorrowedChord(c theory.Chord) theory.Chord {
	out := c.Clone()
	out.Name = c.Root + "m7"
	out.Quality = "m7"
	out.Notes = ChordNotes(c.Root, "m7")
	out.Roman = strings.ToLower(c.Roman)
	out.Tensions = nil
	out.GuideTones = guideTones(out.Notes)
	out.SecondaryDominant = theory.SecondaryDominantOf(c.Root, "m7")
	out.IIVIRole = ""
	out.IsModalInterchange = true
	return out
}

// ColtraneChanges walks three keys a major third apart, descending from
// startKey, and precedes each following key with its dominant:
// B -> Bmaj7 D7 Gmaj7 Bb7 Ebmaj7 Gb7.
func ColtraneChanges(startKey string) []theory.Chord {
	start := theory.ToChromatic(startKey)
	chords := make([]theory.Chord, 0, 6)

	for i := 0; i < 3; i++ {
		keyIdx := start - 4*i
		key := theory.ChromaticName(keyIdx)
		next := theory.ChromaticName(keyIdx - 4)

		tonic := symbolChord(theory.ChordSymbol{Root: key, Quality: "maj7"}, "I", theory.FunctionTonic)
		tonic.Degree = 1
		tonic.Key = key
		chords = append(chords, tonic)

		dominant := symbolChord(SecondaryDominant(next), "V7/"+next, theory.FunctionDominant)
		dominant.Degree = 5
		dominant.Key = key
		chords = append(chords, dominant)
	}
	return chords
}

// Borrowing is one chord borrowed from the parallel minor.
type Borrowing struct {
	Label string             `json:"label"`
	Chord theory.ChordSymbol `json:"chord"`
}

// ModalInterchangeChords lists the common borrowings into majorKey.
func ModalInterchangeChords(majorKey string) []Borrowing {
	sym := func(semitones int, quality string) theory.ChordSymbol {
		return theory.ChordSymbol{Root: theory.Transpose(majorKey, semitones), Quality: quality}
	}
	return []Borrowing{
		{Label: "iv7", Chord: sym(5, "m7")},
		{Label: "bVI", Chord: sym(8, "maj7")},
		{Label: "bVII7", Chord: sym(10, "7")},
		{Label: "bIII", Chord: sym(3, "maj7")},
		{Label: "bII", Chord: sym(1, "maj7")},
	}
}

// substitutes lists, per 1-based degree, the degrees sharing two or more tones.
var substitutes = map[int][]int{
	1: {3, 6},
	2: {4},
	3: {1, 5},
	4: {2, 6},
	5: {7},
	6: {1, 4},
	7: {5},
}

// DiatonicSubstitutes suggests replacement degrees for a 1-based degree in a
// major or natural-minor key. Other modes have no suggestions.
func DiatonicSubstitutes(degree int, mode string) []int {
	m := theory.ResolveMode(mode)
	if m.Degree != 1 || (m.Parent != theory.ParentMajor && m.Parent != theory.ParentNaturalMinor) {
		return []int{}
	}
	return append([]int{}, substitutes[degree]...)
}

// AnalyzeProgression labels ii-V-I and V-I motion in a list of chord symbols.
func AnalyzeProgression(symbols []string) []ChordAnalysis {
	out := make([]ChordAnalysis, len(symbols))
	for i, symbol := range symbols {
		out[i] = ChordAnalysis{Index: i, Chord: symbol}

		if i+2 < len(symbols) {
			next, target := symbols[i+1], symbols[i+2]
			if isMinor7(symbol) && isDominant7(next) && isMajor7(target) &&
				fourthAbove(symbol, next) && fourthAbove(next, target) {
				out[i].Role = "ii of " + rootOf(target)
				continue
			}
		}

		if i+1 < len(symbols) {
			next := symbols[i+1]
			if isDominant7(symbol) && (isMajor7(next) || isMinor7(next)) && fourthAbove(symbol, next) {
				out[i].Role = "V of " + rootOf(next)
			}
		}
	}
	return out
}

func isMinor7(symbol string) bool {
	return strings.Contains(symbol, "m7") && !strings.Contains(symbol, "maj")
}

func isDominant7(symbol string) bool {
	return strings.Contains(symbol, "7") && !strings.Contains(symbol, "m") && !strings.Contains(symbol, "maj")
}

func isMajor7(symbol string) bool {
	return strings.Contains(symbol, "maj7") || strings.Contains(symbol, "M7") || strings.Contains(symbol, "△")
}

func rootOf(symbol string) string {
	return theory.ParseChordSymbol(symbol).Root
}

// fourthAbove reports whether b's root is a perfect fourth above a's.
func fourthAbove(a, b string) bool {
	return theory.ToChromatic(rootOf(b)) == (theory.ToChromatic(rootOf(a))+5)%12
}
