package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleTablesCoverEveryMode(t *testing.T) {
	rules, err := buildRules()
	require.NoError(t, err)

	for _, name := range ModeNames() {
		m, _ := LookupMode(name)
		set, ok := rules[ruleKey{parent: m.Parent, degree: m.Degree}]
		require.True(t, ok, name)
		assert.NoError(t, validateRules(set), name)
	}
}

func TestValidateRulesRejectsGaps(t *testing.T) {
	set := parentRules[ParentMajor]
	set[3].Seventh = ""
	assert.Error(t, validateRules(set))

	set = parentRules[ParentMajor]
	set[0].Allowed = map[int]bool{Ninth: true}
	assert.Error(t, validateRules(set))

	set = parentRules[ParentMajor]
	set[0].Function = "Cadential"
	assert.Error(t, validateRules(set))
}

func TestResolveMode(t *testing.T) {
	assert.Equal(t, ParentMajor, ResolveMode("Ionian").Parent)
	assert.Equal(t, 2, ResolveMode("Dorian").Degree)
	assert.Equal(t, ParentNaturalMinor, ResolveMode("Aeolian").Parent)
	assert.Equal(t, "Natural Minor", ResolveMode("Minor").Name)
	assert.Equal(t, "Natural Minor", ResolveMode("Gypsy Minor").Name)
	assert.Equal(t, "Major", ResolveMode("").Name)
	assert.True(t, ResolveMode("Harmonic Minor").Minor())
	assert.False(t, ResolveMode("Dorian").Minor())
}

func TestTensionInfo(t *testing.T) {
	assert.Equal(t, TensionAvailability{Available: []int{9, 13}, Avoid: []int{11}}, TensionInfo(1, "Major"))
	assert.Equal(t, TensionAvailability{Available: []int{9, 11, 13}, Avoid: []int{}}, TensionInfo(2, "Major"))
	assert.Equal(t, TensionAvailability{Available: []int{9, 13}, Avoid: []int{11}}, TensionInfo(3, "Minor"))
	assert.Equal(t, TensionAvailability{Available: []int{}, Avoid: []int{}}, TensionInfo(8, "Major"))
}

func TestBuildScale(t *testing.T) {
	tests := []struct {
		root string
		name string
		want []string
	}{
		{"C", "Ionian", []string{"C", "D", "E", "F", "G", "A", "B"}},
		{"D", "Lydian", []string{"D", "E", "F#", "G#", "A", "B", "C#"}},
		{"F", "Blues", []string{"F", "Ab", "Bb", "B", "C", "Eb"}},
		{"A", "Minor Pentatonic", []string{"A", "C", "D", "E", "G"}},
		{"C", "Whole Tone", []string{"C", "D", "E", "F#", "G#", "A#"}},
		{"C", "Nonexistent", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.root+" "+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildScale(tt.root, tt.name))
		})
	}
}

func TestParseChordSymbol(t *testing.T) {
	tests := map[string]ChordSymbol{
		"C":       {Root: "C", Quality: "maj7"},
		"Am":      {Root: "A", Quality: "m7"},
		"Bbm7(9)": {Root: "Bb", Quality: "m7"},
		"G7alt":   {Root: "G", Quality: "7alt"},
		"F#ø":     {Root: "F#", Quality: "m7b5"},
		"Bdim":    {Root: "B", Quality: "dim7"},
		"Eb7#11":  {Root: "Eb", Quality: "7#11"},
	}
	for symbol, want := range tests {
		assert.Equal(t, want, ParseChordSymbol(symbol), symbol)
	}
}

func TestAvailableScales(t *testing.T) {
	assert.Equal(t, []string{"Mixolydian", "Dominant Bebop", "Mixolydian Blues"}, AvailableScales("G7"))
	assert.Equal(t, []string{"Locrian", "Locrian #2"}, AvailableScales("Dm7b5"))
	assert.Equal(t, []string{"Ionian", "Lydian"}, AvailableScales("Bb"))
	assert.Equal(t, []string{"Mixolydian"}, AvailableScales("C9(b9)")[:1])
	assert.Equal(t, []string{"Ionian"}, AvailableScales("Cfoo"))
}

func TestScaleLibraryLookups(t *testing.T) {
	info, ok := LookupScaleInfo("Phrygian")
	require.True(t, ok)
	assert.Equal(t, []int{2, 6}, info.Avoid)
	_, ok = LookupScaleInfo("Nope")
	assert.False(t, ok)

	assert.Contains(t, ModeAliases("Altered"), "Super Locrian")
	assert.Empty(t, ModeAliases("Ionian"))

	cfg := AvoidNoteConfig("Dorian")
	assert.Equal(t, ColorNote, cfg[6].Type)
	assert.Equal(t, AvoidNote, cfg[6].Alternative)

	note, ok := CharacteristicNote("Lydian")
	require.True(t, ok)
	assert.Equal(t, "4", note)
	_, ok = CharacteristicNote("Ionian")
	assert.False(t, ok)
}

func TestCircleOfFifths(t *testing.T) {
	circle := CircleOfFifths()
	require.Len(t, circle, 12)
	assert.Equal(t, "C", circle[0].Major)
	assert.Equal(t, "Am", circle[0].RelativeMinor)
	assert.Equal(t, 2, circle[2].Accidentals)
	assert.Equal(t, 5, circle[7].Accidentals)

	related, ok := LookupRelatedKeys("C")
	require.True(t, ok)
	assert.Equal(t, RelatedKeys{Key: "C", Dominant: "G", Subdominant: "F", Relative: "Am"}, related)

	related, ok = LookupRelatedKeys("Gb")
	require.True(t, ok)
	assert.Equal(t, "F#", related.Key)
	assert.Equal(t, "Db", related.Dominant)

	_, ok = LookupRelatedKeys("H")
	assert.False(t, ok)
}

func TestKeyRelationship(t *testing.T) {
	tests := []struct {
		from, to string
		want     string
	}{
		{"C", "C", "Same key"},
		{"C", "G", "Dominant (V)"},
		{"C", "F", "Subdominant (IV)"},
		{"C", "Gb", "bII (Tritone sub)"},
		{"C", "A", "3 steps"},
	}
	for _, tt := range tests {
		got, ok := KeyRelationship(tt.from, tt.to)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.from, tt.to)
	}

	_, ok := KeyRelationship("C", "Q")
	assert.False(t, ok)
}
