package playback

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/harmony-api/internal/theory"
	"github.com/Conceptual-Machines/harmony-api/internal/voicing"
)

// Note is a pitch request: a BareNote or an AnnotatedNote.
type Note interface {
	spelled() (spelling, error)
}

// BareNote is a plain name such as "Eb" or "Eb5".
type BareNote struct {
	Name string
}

// MarshalJSON writes the bare name as a JSON string.
func (n BareNote) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Name)
}

func (n BareNote) spelled() (spelling, error) {
	return parseSpelling(n.Name)
}

// AnnotatedNote carries an optional octave and an optional grace note that
// sounds just before the main pitch.
type AnnotatedNote struct {
	Name      string `json:"note"`
	Octave    *int   `json:"octave,omitempty"`
	GraceNote string `json:"graceNote,omitempty"`
}

func (n AnnotatedNote) spelled() (spelling, error) {
	s, err := parseSpelling(n.Name)
	if err != nil {
		return spelling{}, err
	}
	if n.Octave != nil {
		s.octave, s.hasOctave = *n.Octave, true
	}
	if n.GraceNote != "" {
		g, err := parseSpelling(n.GraceNote)
		if err != nil {
			return spelling{}, fmt.Errorf("grace note: %w", err)
		}
		s.grace = &g
	}
	return s, nil
}

// NoteList decodes a JSON array whose entries are either strings or
// {note, octave?, graceNote?} objects.
type NoteList []Note

// UnmarshalJSON implements json.Unmarshaler.
func (l *NoteList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("notes must be an array: %w", err)
	}

	out := make(NoteList, 0, len(raw))
	for i, r := range raw {
		n, err := decodeNote(r)
		if err != nil {
			return fmt.Errorf("note %d: %w", i, err)
		}
		out = append(out, n)
	}
	*l = out
	return nil
}

func decodeNote(raw json.RawMessage) (Note, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return BareNote{Name: name}, nil
	}

	var a AnnotatedNote
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("expected a string or an object: %w", err)
	}
	if a.Name == "" {
		return nil, errors.New("missing note name")
	}
	return a, nil
}

// spelling is a parsed note with its octave, when one was given.
type spelling struct {
	note      string
	octave    int
	hasOctave bool
	grace     *spelling
}

var notePattern = regexp.MustCompile(`^([A-Ga-g][#xb]*)(-?\d+)?$`)

func parseSpelling(name string) (spelling, error) {
	m := notePattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return spelling{}, fmt.Errorf("invalid note name %q", name)
	}
	s := spelling{note: m[1]}
	if m[2] != "" {
		octave, err := strconv.Atoi(m[2])
		if err != nil {
			return spelling{}, fmt.Errorf("invalid octave in note name %q: %w", name, err)
		}
		s.octave, s.hasOctave = octave, true
	}
	return s, nil
}

func (s spelling) octaveOr(fallback int) int {
	if s.hasOctave {
		return s.octave
	}
	return fallback
}

// Pitch is a note request resolved to MIDI numbers.
type Pitch struct {
	Main     int
	Grace    int
	HasGrace bool
}

// Resolve turns a note into MIDI numbers. Names without an octave sound in
// octave; a grace note without its own octave follows the main note's.
func Resolve(n Note, octave int) (Pitch, error) {
	s, err := n.spelled()
	if err != nil {
		return Pitch{}, err
	}
	return s.pitch(octave), nil
}

func (s spelling) pitch(fallback int) Pitch {
	octave := s.octaveOr(fallback)
	p := Pitch{Main: midiNumber(s.note, octave)}
	if s.grace != nil {
		p.Grace = midiNumber(s.grace.note, s.grace.octaveOr(octave))
		p.HasGrace = true
	}
	return p
}

// FromScale lists the degrees of a scale for playback. Blue degrees get the
// blue note as a grace note.
func FromScale(scale []theory.ScaleDegree) NoteList {
	out := make(NoteList, len(scale))
	for i, d := range scale {
		if d.IsBlue && d.BlueNote != "" {
			out[i] = AnnotatedNote{Name: d.Note, GraceNote: d.BlueNote}
			continue
		}
		out[i] = BareNote{Name: d.Note}
	}
	return out
}

// FromVoicing lists the tones of a voicing with their octaves.
func FromVoicing(v voicing.Voicing) NoteList {
	out := make(NoteList, len(v))
	for i, t := range v {
		octave := t.Octave
		out[i] = AnnotatedNote{Name: t.Note, Octave: &octave}
	}
	return out
}
