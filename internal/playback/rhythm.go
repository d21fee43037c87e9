package playback

import (
	"fmt"
	"math"
	"sort"

	"github.com/Conceptual-Machines/harmony-api/internal/models"
	"github.com/Conceptual-Machines/harmony-api/internal/voicing"
)

// RhythmTemplate is a comping figure: hit offsets in beats within a 4/4 bar,
// a velocity multiplier per hit and a length multiplier for every hit.
type RhythmTemplate struct {
	Name         string
	Offsets      []float64
	Accents      []float64
	Articulation float64
}

// Articulations, as a fraction of the time between hits.
const (
	articulationHigh    = 0.9
	articulationMedium  = 0.8
	articulationMidHigh = 0.85
	articulationShort   = 0.4
	articulationOverlap = 1.1
)

type beats = []float64

// Offsets span one 4/4 bar unless noted.
var rhythmTemplates = map[string]RhythmTemplate{
	"whole":    {Offsets: beats{0}, Accents: beats{1.0}, Articulation: 1.0},
	"half":     {Offsets: beats{0, 2}, Accents: beats{1.0, 0.9}, Articulation: 1.0},
	"quarters": {Offsets: beats{0, 1, 2, 3}, Accents: beats{1.0, 0.8, 0.9, 0.8}, Articulation: articulationHigh},
	"8ths": {
		Offsets:      beats{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5},
		Accents:      beats{1.0, 0.7, 0.9, 0.7, 0.95, 0.7, 0.9, 0.7},
		Articulation: articulationMidHigh,
	},
	"16ths": {
		Offsets:      beats{0, 0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2, 2.25, 2.5, 2.75, 3, 3.25, 3.5, 3.75},
		Accents:      beats{1.0, 0.6, 0.8, 0.6, 0.9, 0.6, 0.8, 0.6, 0.95, 0.6, 0.8, 0.6, 0.9, 0.6, 0.8, 0.6},
		Articulation: articulationMedium,
	},

	// triplet feel
	"swing": {
		Offsets:      beats{0, 0.67, 1, 1.67, 2, 2.67, 3, 3.67},
		Accents:      beats{1.0, 0.7, 0.9, 0.7, 0.95, 0.7, 0.9, 0.7},
		Articulation: articulationMidHigh,
	},
	"shuffle": {
		Offsets:      beats{0, 0.67, 1, 1.67, 2, 2.67, 3, 3.67},
		Accents:      beats{1.0, 0.8, 0.9, 0.8, 1.0, 0.8, 0.9, 0.8},
		Articulation: articulationHigh,
	},

	// bossa runs over two bars; hits past the chord length are dropped
	"bossa":    {Offsets: beats{0, 1.5, 3, 4.5, 6, 7.5}, Accents: beats{1.0, 0.8, 0.9, 0.8, 1.0, 0.8}, Articulation: articulationHigh},
	"samba":    {Offsets: beats{0, 0.5, 1.5, 2, 3, 3.5}, Accents: beats{1.0, 0.7, 0.9, 0.85, 0.95, 0.7}, Articulation: articulationMedium},
	"tresillo": {Offsets: beats{0, 1.5, 3}, Accents: beats{1.0, 0.9, 0.95}, Articulation: articulationHigh},

	"waltz": {Offsets: beats{0, 1, 2}, Accents: beats{1.0, 0.7, 0.75}, Articulation: articulationHigh},
	"6/8":   {Offsets: beats{0, 0.5, 1, 1.5, 2, 2.5}, Accents: beats{1.0, 0.6, 0.7, 0.9, 0.6, 0.7}, Articulation: articulationMidHigh},

	"offbeat":      {Offsets: beats{0.5, 1.5, 2.5, 3.5}, Accents: beats{0.9, 0.85, 0.9, 0.85}, Articulation: articulationMidHigh},
	"syncopated":   {Offsets: beats{0, 0.5, 1.5, 2, 3, 3.5}, Accents: beats{1.0, 0.8, 0.9, 0.85, 0.95, 0.8}, Articulation: articulationMidHigh},
	"anticipation": {Offsets: beats{0, 1, 1.75, 3, 3.75}, Accents: beats{1.0, 0.8, 0.9, 0.85, 0.9}, Articulation: articulationMidHigh},
	"charleston":   {Offsets: beats{0, 1.5}, Accents: beats{1.0, 0.9}, Articulation: articulationHigh},

	"broken":  {Offsets: beats{0, 0.5, 1, 1.5}, Accents: beats{1.0, 0.8, 0.85, 0.75}, Articulation: articulationHigh},
	"alberti": {Offsets: beats{0, 0.25, 0.5, 0.75}, Accents: beats{1.0, 0.7, 0.85, 0.7}, Articulation: articulationMidHigh},
	"stride":  {Offsets: beats{0, 1, 2, 3}, Accents: beats{1.0, 0.8, 0.9, 0.8}, Articulation: articulationHigh},

	"staccato": {Offsets: beats{0, 1, 2, 3}, Accents: beats{1.0, 0.9, 0.95, 0.9}, Articulation: articulationShort},
	"legato":   {Offsets: beats{0, 1, 2, 3}, Accents: beats{0.9, 0.85, 0.9, 0.85}, Articulation: articulationOverlap},
}

func init() {
	for name, tmpl := range rhythmTemplates {
		tmpl.Name = name
		rhythmTemplates[name] = tmpl
	}
}

// GetRhythmTemplate returns a rhythm template by name
func GetRhythmTemplate(name string) (RhythmTemplate, bool) {
	tmpl, ok := rhythmTemplates[name]
	return tmpl, ok
}

// RhythmNames lists the available templates.
func RhythmNames() []string {
	names := make([]string, 0, len(rhythmTemplates))
	for name := range rhythmTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyRhythm creates one chord hit per template offset, repeated repeat times
// over cycles of length beats starting at startBeat.
func ApplyRhythm(pitches []int, velocity int, startBeat, length float64, repeat int, tmpl RhythmTemplate) []models.NoteEvent {
	var noteEvents []models.NoteEvent
	scale := length / 4.0 // 4 beats = template cycle

	for r := 0; r < repeat; r++ {
		cycleStart := startBeat + (float64(r) * length)

		for i, offset := range tmpl.Offsets {
			beatPos := cycleStart + offset*scale
			if beatPos >= cycleStart+length {
				break
			}

			accent := velocity
			if i < len(tmpl.Accents) {
				accent = int(math.Round(float64(velocity) * tmpl.Accents[i]))
			}

			// Hits never run into the next hit or past the cycle end
			noteDuration := (length / float64(len(tmpl.Offsets))) * tmpl.Articulation
			maxDuration := length - offset*scale
			if i+1 < len(tmpl.Offsets) {
				maxDuration = (tmpl.Offsets[i+1] - offset) * scale
			}
			if noteDuration > maxDuration {
				noteDuration = maxDuration
			}

			for _, midiNote := range pitches {
				noteEvents = append(noteEvents, models.NoteEvent{
					MidiNoteNumber: midiNote,
					Velocity:       accent,
					StartBeats:     beatPos,
					DurationBeats:  noteDuration,
				})
			}
		}
	}

	return noteEvents
}

// Options controls how a voiced progression is laid out in time.
type Options struct {
	Rhythm        string  `json:"rhythm"`
	BeatsPerChord float64 `json:"beatsPerChord"`
	Velocity      int     `json:"velocity"`
}

const (
	DefaultRhythm        = "whole"
	DefaultBeatsPerChord = 4.0
	DefaultVelocity      = 100
	MaxBeatsPerChord     = 64.0
)

func (o Options) withDefaults() Options {
	if o.Rhythm == "" {
		o.Rhythm = DefaultRhythm
	}
	if o.BeatsPerChord <= 0 {
		o.BeatsPerChord = DefaultBeatsPerChord
	}
	if o.Velocity <= 0 {
		o.Velocity = DefaultVelocity
	}
	return o
}

// ProgressionEvents places one voicing per chord back to back and plays each
// with the chosen rhythm template.
func ProgressionEvents(symbols []string, voicings []voicing.Voicing, opts Options) (models.Rendering, error) {
	if len(symbols) != len(voicings) {
		return models.Rendering{}, fmt.Errorf("got %d chord symbols for %d voicings", len(symbols), len(voicings))
	}
	opts = opts.withDefaults()
	if opts.BeatsPerChord > MaxBeatsPerChord {
		return models.Rendering{}, fmt.Errorf("beats per chord %g exceeds %g", opts.BeatsPerChord, MaxBeatsPerChord)
	}
	tmpl, ok := GetRhythmTemplate(opts.Rhythm)
	if !ok {
		return models.Rendering{}, fmt.Errorf("unknown rhythm template: %s", opts.Rhythm)
	}

	out := models.Rendering{
		Chords: make([]models.ChordEvent, 0, len(symbols)),
		Notes:  []models.NoteEvent{},
	}
	for i, v := range voicings {
		start := float64(i) * opts.BeatsPerChord
		out.Chords = append(out.Chords, models.ChordEvent{
			ChordSymbol:   symbols[i],
			StartBeats:    start,
			DurationBeats: opts.BeatsPerChord,
		})
		out.Notes = append(out.Notes, ApplyRhythm(v.Pitches(), opts.Velocity, start, opts.BeatsPerChord, 1, tmpl)...)
	}
	return out, nil
}
