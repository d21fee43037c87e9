// Package contracts shapes engine results into the payloads consumed by
// notation renderers and keyboard highlighters.
package contracts

import (
	"github.com/Conceptual-Machines/harmony-api/internal/models"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
	"github.com/Conceptual-Machines/harmony-api/internal/voicing"
)

// ScaleStaff draws a scale as a melodic line. Blue degrees carry their blue note.
func ScaleStaff(key theory.KeySignature, scale []theory.ScaleDegree) models.StaffPayload {
	notes := make([]models.StaffNote, len(scale))
	for i, d := range scale {
		notes[i] = models.StaffNote{Note: d.Note, IsBlue: d.IsBlue, BlueNote: d.BlueNote}
	}
	return models.StaffPayload{
		Mode:         models.StaffModeScale,
		KeySignature: key.Clone(),
		Notes:        notes,
	}
}

// ChordStaff draws a chord as stacked noteheads with its avoid-note degrees.
func ChordStaff(key theory.KeySignature, chord theory.Chord) models.StaffPayload {
	notes := make([]models.StaffNote, len(chord.Notes))
	for i, n := range chord.Notes {
		notes[i] = models.StaffNote{Note: n}
	}
	return models.StaffPayload{
		Mode:         models.StaffModeChord,
		KeySignature: key.Clone(),
		Notes:        notes,
		AvoidNotes:   append([]int{}, chord.AvoidNotes...),
	}
}

// VoicingStaff draws a voicing with explicit octaves.
func VoicingStaff(key theory.KeySignature, v voicing.Voicing) models.StaffPayload {
	notes := make([]models.StaffNote, len(v))
	for i, t := range v {
		octave := t.Octave
		notes[i] = models.StaffNote{Note: t.Note, Octave: &octave}
	}
	return models.StaffPayload{
		Mode:         models.StaffModeChord,
		KeySignature: key.Clone(),
		Notes:        notes,
	}
}

// ChordHighlights marks the root, the chord tones and the added tensions of a
// chord. Tensions are the trailing notes of the chord.
func ChordHighlights(chord theory.Chord) []models.KeyHighlight {
	out := make([]models.KeyHighlight, len(chord.Notes))
	firstTension := len(chord.Notes) - len(chord.Tensions)
	for i, n := range chord.Notes {
		role := models.RoleChord
		switch {
		case i == 0:
			role = models.RoleRoot
		case i >= firstTension:
			role = models.RoleTension
		}
		out[i] = models.KeyHighlight{Note: n, Role: role}
	}
	return out
}

// VoicingHighlights marks each tone of a voicing with its octave. Tones
// sharing the root's pitch class are roots; anything beyond the quality's
// chord tones is a tension.
func VoicingHighlights(root, quality string, v voicing.Voicing) []models.KeyHighlight {
	rootPC := theory.ToChromatic(root)
	chordTones := make(map[int]bool)
	for _, interval := range theory.Intervals(quality) {
		chordTones[(rootPC+interval)%12] = true
	}

	out := make([]models.KeyHighlight, len(v))
	for i, t := range v {
		pc := theory.ToChromatic(t.Note)
		role := models.RoleTension
		switch {
		case pc == rootPC:
			role = models.RoleRoot
		case chordTones[pc]:
			role = models.RoleChord
		}
		out[i] = models.KeyHighlight{Note: t.String(), Role: role}
	}
	return out
}
