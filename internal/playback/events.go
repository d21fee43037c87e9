package playback

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/harmony-api/internal/models"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

// Timing of the preview figures, in beats.
const (
	DefaultOctave  = 4
	StrumBeats     = 0.06
	GraceLeadBeats = 0.2
	GraceBeats     = 0.125
	ChordBeats     = 4.0
	ScaleStepBeats = 1.0
)

const (
	velocityFull  = 127
	velocityMain  = 102
	velocityGrace = 76
)

// ChordEvents sounds notes together with a slight strum. A grace note sounds
// briefly at the note's strum position and delays its main pitch.
func ChordEvents(notes []Note) ([]models.NoteEvent, error) {
	events := make([]models.NoteEvent, 0, len(notes))
	for i, n := range notes {
		p, err := Resolve(n, DefaultOctave)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}

		start := float64(i) * StrumBeats
		if !p.HasGrace {
			events = append(events, models.NoteEvent{
				MidiNoteNumber: p.Main, Velocity: velocityFull, StartBeats: start, DurationBeats: ChordBeats,
			})
			continue
		}
		events = append(events,
			models.NoteEvent{MidiNoteNumber: p.Grace, Velocity: velocityGrace, StartBeats: start, DurationBeats: GraceBeats},
			models.NoteEvent{MidiNoteNumber: p.Main, Velocity: velocityMain, StartBeats: start + GraceLeadBeats, DurationBeats: ChordBeats},
		)
	}
	return events, nil
}

// ScaleEvents sounds notes one beat apart. Notes without an octave start in
// octave 4 and move up an octave whenever the letter name falls, so a scale
// always ascends.
func ScaleEvents(notes []Note) ([]models.NoteEvent, error) {
	events := make([]models.NoteEvent, 0, len(notes))
	octave := DefaultOctave
	lastLetter := -1
	for i, n := range notes {
		s, err := n.spelled()
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}

		if !s.hasOctave {
			letter := strings.Index("CDEFGAB", theory.Letter(s.note))
			if lastLetter >= 0 && letter < lastLetter {
				octave++
			}
			lastLetter = letter
		}
		p := s.pitch(octave)

		start := float64(i) * ScaleStepBeats
		if !p.HasGrace {
			events = append(events, models.NoteEvent{
				MidiNoteNumber: p.Main, Velocity: velocityMain, StartBeats: start, DurationBeats: ScaleStepBeats,
			})
			continue
		}
		events = append(events,
			models.NoteEvent{MidiNoteNumber: p.Grace, Velocity: velocityGrace, StartBeats: start, DurationBeats: GraceBeats},
			models.NoteEvent{MidiNoteNumber: p.Main, Velocity: velocityMain, StartBeats: start + GraceLeadBeats, DurationBeats: ScaleStepBeats},
		)
	}
	return events, nil
}
