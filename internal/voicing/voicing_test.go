package voicing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tones(specs ...interface{}) Voicing {
	v := make(Voicing, 0, len(specs)/2)
	for i := 0; i < len(specs); i += 2 {
		v = append(v, Tone{Note: specs[i].(string), Octave: specs[i+1].(int)})
	}
	return v
}

func TestTonePitch(t *testing.T) {
	assert.Equal(t, 60, Tone{Note: "C", Octave: 4}.Pitch())
	assert.Equal(t, 69, Tone{Note: "A", Octave: 4}.Pitch())
	assert.Equal(t, 28, Tone{Note: "E", Octave: 1}.Pitch())
	assert.Equal(t, 59, Tone{Note: "Cb", Octave: 4}.Pitch())
	assert.Equal(t, 61, Tone{Note: "C#", Octave: 4}.Pitch())
}

func TestShapes(t *testing.T) {
	tests := []struct {
		name string
		got  Voicing
		want Voicing
	}{
		{"close C maj7", Close("C", "maj7", 4), tones("C", 4, "E", 4, "G", 4, "B", 4)},
		{"close A m7 wraps", Close("A", "m7", 4), tones("A", 4, "C", 5, "E", 5, "G", 5)},
		{"close C# uses flat names", Close("C#", "maj7", 4), tones("Db", 4, "F", 4, "Ab", 4, "C", 5)},
		{"close unknown quality", Close("C", "weird", 4), Close("C", "maj7", 4)},
		{"shell C maj7", Shell("C", "maj7", 3), tones("C", 3, "E", 3, "B", 3)},
		{"shell aug uses 5th", Shell("C", "aug", 3), tones("C", 3, "E", 3, "Ab", 3)},
		{"rootless A C maj7", RootlessA("C", "maj7", 4), tones("E", 4, "G", 4, "B", 4, "D", 5)},
		{"rootless A G7", RootlessA("G", "7", 4), tones("B", 4, "D", 5, "F", 5, "A", 5)},
		{"rootless A C maj9 reads 9th", RootlessA("C", "maj9", 4), tones("E", 4, "G", 4, "B", 4, "D", 5)},
		{"rootless B G7", RootlessB("G", "7", 4), tones("F", 5, "A", 5, "B", 5, "D", 6)},
		{"drop2 C maj7", Drop2("C", "maj7", 4), tones("G", 3, "C", 4, "E", 4, "B", 4)},
		{"drop2 C aug pads root", Drop2("C", "aug", 4), tones("Ab", 3, "C", 4, "E", 4, "C", 5)},
		{"drop2 C 7alt uses first four", Drop2("C", "7alt", 4), tones("Gb", 3, "C", 4, "E", 4, "Bb", 4)},
		{"quartal C", Quartal("C", 4, 4), tones("C", 4, "F", 4, "Bb", 4, "Eb", 5)},
		{"quartal default size", Quartal("D", 4, 0), tones("D", 4, "G", 4, "C", 5, "F", 5)},
		{"upper structure D over C7", UpperStructure("C", "D", false, 4), tones("E", 4, "Bb", 4, "D", 5, "Gb", 5, "A", 5)},
		{"upper structure Eb minor over C7", UpperStructure("C", "Eb", true, 4), tones("E", 4, "Bb", 4, "Eb", 5, "Gb", 5, "Bb", 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestShellNeverIncludesFifth(t *testing.T) {
	for _, quality := range []string{"maj7", "m7", "7", "m7b5", "dim7", "mMaj7"} {
		v := Shell("C", quality, 3)
		require.Len(t, v, 3, quality)
		assert.NotEqual(t, "G", v[2].Note, quality)
	}
}

func TestShapesAreIdempotent(t *testing.T) {
	first := All("Eb", "m7")
	second := All("Eb", "m7")
	assert.Equal(t, first, second)

	first.Drop2[0].Note = "X"
	assert.NotEqual(t, "X", All("Eb", "m7").Drop2[0].Note)
}

func TestTwoHand(t *testing.T) {
	hands := TwoHand("C", "maj7", 4)
	assert.Equal(t, tones("C", 3, "E", 3, "B", 3), hands.LeftHand)
	assert.Equal(t, tones("G", 4, "B", 4, "D", 5), hands.RightHand)
}

func TestNoteNames(t *testing.T) {
	assert.Equal(t, []string{"C4", "E4", "G4", "B4"}, NoteNames(Close("C", "maj7", 4)))
	assert.Empty(t, NoteNames(nil))
}

func TestParseKindAndGenerate(t *testing.T) {
	for _, selector := range []string{"close", "shell", "rootlessA", "RootlessB", "drop2", "quartal"} {
		k, err := ParseKind(selector)
		require.NoError(t, err, selector)
		v, err := Generate(k, "C", "maj7", DefaultOctaveFor(k))
		require.NoError(t, err)
		assert.NotEmpty(t, v)
	}

	_, err := ParseKind("drop-3")
	assert.Error(t, err)
	_, err = Generate(Kind("spread"), "C", "maj7", 4)
	assert.Error(t, err)

	v, err := Generate(KindShell, "C", "maj7", DefaultOctaveFor(KindShell))
	require.NoError(t, err)
	assert.Equal(t, Shell("C", "maj7", 3), v)
	assert.Len(t, Kinds(), 6)
}

func TestEnforceIntervalLimits(t *testing.T) {
	// lower note of the pair moves, whichever side it is on
	assert.Equal(t, tones("C", 3, "D", 2), EnforceIntervalLimits(tones("C", 2, "D", 2)))
	assert.Equal(t, tones("D", 2, "C", 3), EnforceIntervalLimits(tones("D", 2, "C", 2)))

	// wide registers are untouched
	v := Close("C", "maj7", 4)
	assert.Equal(t, v, EnforceIntervalLimits(v))

	assert.Empty(t, EnforceIntervalLimits(nil))
	assert.Equal(t, tones("C", 0), EnforceIntervalLimits(tones("C", 0)))
}

func TestEnforceIntervalLimitsClearsAdjacentPairs(t *testing.T) {
	inputs := map[string]Voicing{
		"low shell":      Shell("C", "maj7", 1),
		"low close":      Close("C", "maj7", 2),
		"low rootless A": RootlessA("C", "m7", 1),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			original := append(Voicing{}, input...)
			out := EnforceIntervalLimits(input)
			assert.Equal(t, original, input, "input must not be modified")
			require.Len(t, out, len(input))

			for i := 1; i < len(out); i++ {
				a, b := out[i-1].Pitch(), out[i].Pitch()
				interval := b - a
				if interval < 0 {
					interval = -interval
				}
				limit, ok := LowIntervalLimits[interval%12]
				if ok {
					assert.GreaterOrEqual(t, min(a, b), limit, "pair %d", i)
				}
			}
		})
	}

	assert.Equal(t, tones("C", 2, "E", 1, "B", 1), EnforceIntervalLimits(Shell("C", "maj7", 1)))
	assert.Equal(t, tones("C", 3, "E", 2, "G", 2, "B", 2), EnforceIntervalLimits(Close("C", "maj7", 2)))
}

func TestOptimizeVoiceLeading(t *testing.T) {
	// no previous voicing: rootless A
	assert.Equal(t, RootlessA("G", "7", 4), OptimizeVoiceLeading(nil, "G", "7"))
	assert.Equal(t, RootlessA("G", "7", 4), OptimizeVoiceLeading(Voicing{}, "G", "7"))

	// from a drop 2 C major 7th, the drop 2 G7 moves least
	prev := Drop2("C", "maj7", 4)
	assert.Equal(t, 53, Movement(prev, RootlessA("G", "7", 4)))
	assert.Equal(t, 77, Movement(prev, RootlessB("G", "7", 4)))
	assert.Equal(t, 27, Movement(prev, Drop2("G", "7", 4)))
	assert.Equal(t, Drop2("G", "7", 4), OptimizeVoiceLeading(prev, "G", "7"))

	// A4 A4 sits exactly between rootless A and B of C maj7: the tie goes to A
	tie := tones("A", 4, "A", 4)
	require.Equal(t, Movement(tie, RootlessA("C", "maj7", 4)), Movement(tie, RootlessB("C", "maj7", 4)))
	assert.Equal(t, RootlessA("C", "maj7", 4), OptimizeVoiceLeading(tie, "C", "maj7"))
}

func TestSequence(t *testing.T) {
	chords := []ChordRef{{"D", "m7"}, {"G", "7"}, {"C", "maj7"}}
	voicings, err := Sequence(chords, KindRootlessA)
	require.NoError(t, err)
	require.Len(t, voicings, 3)

	assert.Equal(t, RootlessA("D", "m7", 4), voicings[0])
	assert.Equal(t, OptimizeVoiceLeading(voicings[0], "G", "7"), voicings[1])
	assert.Equal(t, OptimizeVoiceLeading(voicings[1], "C", "maj7"), voicings[2])

	shells, err := Sequence(chords[:1], KindShell)
	require.NoError(t, err)
	assert.Equal(t, Shell("D", "m7", 3), shells[0])

	_, err = Sequence(chords, Kind("cluster"))
	assert.Error(t, err)

	empty, err := Sequence(nil, KindClose)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAnalyze(t *testing.T) {
	stats := Analyze(Close("C", "maj7", 4))
	assert.Equal(t, 60, stats.Lowest)
	assert.Equal(t, 71, stats.Highest)
	assert.Equal(t, 11, stats.Span)
	assert.InDelta(t, 65.5, stats.Centroid, 1e-9)
	assert.InDelta(t, 4.6547, stats.Spread, 1e-3)

	single := Analyze(tones("C", 4))
	assert.Equal(t, 0, single.Span)
	assert.Equal(t, 0.0, single.Spread)

	assert.Equal(t, Stats{}, Analyze(nil))
}
