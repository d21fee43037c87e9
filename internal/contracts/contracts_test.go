package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/harmony-api/internal/models"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
	"github.com/Conceptual-Machines/harmony-api/internal/voicing"
)

func roles(highlights []models.KeyHighlight) []models.HighlightRole {
	out := make([]models.HighlightRole, len(highlights))
	for i, h := range highlights {
		out[i] = h.Role
	}
	return out
}

func TestScaleStaff(t *testing.T) {
	engine := theory.NewEngine()
	key := engine.KeySignature("C", "Major")
	payload := ScaleStaff(key, engine.Scale("C", "Major", true))

	assert.Equal(t, models.StaffModeScale, payload.Mode)
	require.Len(t, payload.Notes, 7)
	assert.Equal(t, models.StaffNote{Note: "C"}, payload.Notes[0])
	assert.Equal(t, models.StaffNote{Note: "E", IsBlue: true, BlueNote: "Eb"}, payload.Notes[2])
	assert.Nil(t, payload.Notes[2].Octave)
	assert.Equal(t, 0, payload.KeySignature.Count)
}

func TestChordStaff(t *testing.T) {
	engine := theory.NewEngine()
	key := engine.KeySignature("D", "Major")
	chords := engine.DiatonicChords(engine.Scale("D", "Major", false), "Major", theory.BasicTensions)
	payload := ChordStaff(key, chords[0])

	assert.Equal(t, models.StaffModeChord, payload.Mode)
	assert.Equal(t, []string{"F#", "C#"}, payload.KeySignature.Accidentals)
	assert.Len(t, payload.Notes, 4)
	assert.Equal(t, chords[0].AvoidNotes, payload.AvoidNotes)

	payload.KeySignature.Accidentals[0] = "X"
	assert.Equal(t, "F#", key.Accidentals[0])
}

func TestVoicingStaff(t *testing.T) {
	payload := VoicingStaff(theory.KeySignature{}, voicing.Drop2("C", "maj7", 4))
	require.Len(t, payload.Notes, 4)
	require.NotNil(t, payload.Notes[0].Octave)
	assert.Equal(t, "G", payload.Notes[0].Note)
	assert.Equal(t, 3, *payload.Notes[0].Octave)
	assert.Equal(t, 4, *payload.Notes[3].Octave)
}

func TestChordHighlights(t *testing.T) {
	engine := theory.NewEngine()
	chords := engine.DiatonicChords(engine.Scale("C", "Major", false), "Major", theory.AllTensions)
	g7 := chords[4]

	highlights := ChordHighlights(g7)
	assert.Equal(t, []models.HighlightRole{
		models.RoleRoot, models.RoleChord, models.RoleChord, models.RoleChord,
		models.RoleTension, models.RoleTension, models.RoleTension,
	}, roles(highlights))
	assert.Equal(t, "C#", highlights[5].Note)

	basic := engine.DiatonicChords(engine.Scale("C", "Major", false), "Major", theory.BasicTensions)
	assert.Equal(t, []models.HighlightRole{
		models.RoleRoot, models.RoleChord, models.RoleChord, models.RoleChord,
	}, roles(ChordHighlights(basic[0])))
}

func TestVoicingHighlights(t *testing.T) {
	highlights := VoicingHighlights("G", "7", voicing.RootlessA("G", "7", 4))
	assert.Equal(t, []models.KeyHighlight{
		{Note: "B4", Role: models.RoleChord},
		{Note: "D5", Role: models.RoleChord},
		{Note: "F5", Role: models.RoleChord},
		{Note: "A5", Role: models.RoleTension},
	}, highlights)

	closed := VoicingHighlights("C", "maj7", voicing.Close("C", "maj7", 4))
	assert.Equal(t, models.RoleRoot, closed[0].Role)
	assert.Equal(t, "C4", closed[0].Note)
}
