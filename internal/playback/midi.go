package playback

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Conceptual-Machines/harmony-api/internal/models"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

const (
	DefaultTempo           = 120.0
	DefaultTicksPerQuarter = 480
	maxTicksPerQuarter     = 32767

	MinTempo = 20.0
	MaxTempo = 400.0
)

// ValidateTempo rejects tempos outside MinTempo-MaxTempo BPM
func ValidateTempo(bpm float64) error {
	if bpm < MinTempo || bpm > MaxTempo {
		return fmt.Errorf("tempo %g outside %g-%g bpm", bpm, MinTempo, MaxTempo)
	}
	return nil
}

// NoteNameToMIDI converts a note name with octave ("C4", "Bb-1") to a MIDI
// note number. C4 is 60; results are clamped to 0-127.
func NoteNameToMIDI(noteName string) (int, error) {
	s, err := parseSpelling(noteName)
	if err != nil {
		return 0, err
	}
	if !s.hasOctave {
		return 0, fmt.Errorf("missing octave in note name: %s", noteName)
	}
	return midiNumber(s.note, s.octave), nil
}

// midiNumber uses (octave + 1) * 12 + semitone, so C-1 = 0 and C4 = 60.
func midiNumber(note string, octave int) int {
	return clamp((octave+1)*12+theory.Semitones(note), 0, 127)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type timedMessage struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// WriteSMF writes events as a single-track Standard MIDI File on channel 1.
// A non-positive tempo or resolution falls back to the defaults. Events that
// end past the last representable tick are an error.
func WriteSMF(w io.Writer, events []models.NoteEvent, tempo float64, ticks int) error {
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	if ticks <= 0 {
		ticks = DefaultTicksPerQuarter
	}
	if ticks > maxTicksPerQuarter {
		return fmt.Errorf("ticks per quarter %d exceeds %d", ticks, maxTicksPerQuarter)
	}
	if err := ValidateTempo(tempo); err != nil {
		return err
	}

	timeline := make([]timedMessage, 0, len(events)*2)
	for _, e := range events {
		key := uint8(clamp(e.MidiNoteNumber, 0, 127))
		velocity := uint8(clamp(e.Velocity, 1, 127))
		start, ok := beatsToTicks(e.StartBeats, ticks)
		if !ok {
			return fmt.Errorf("note at beat %g is out of range", e.StartBeats)
		}
		end, ok := beatsToTicks(e.StartBeats+e.DurationBeats, ticks)
		if !ok {
			return fmt.Errorf("note ending at beat %g is out of range", e.StartBeats+e.DurationBeats)
		}
		if end <= start {
			end = start + 1
		}
		timeline = append(timeline,
			timedMessage{tick: start, msg: midi.NoteOn(0, key, velocity)},
			timedMessage{tick: end, off: true, msg: midi.NoteOff(0, key)},
		)
	}

	// note-offs go first on a shared tick so repeated pitches retrigger
	sort.SliceStable(timeline, func(i, j int) bool {
		if timeline[i].tick != timeline[j].tick {
			return timeline[i].tick < timeline[j].tick
		}
		return timeline[i].off && !timeline[j].off
	})

	var track smf.Track
	track.Add(0, smf.MetaTempo(tempo))
	var last uint32
	for _, m := range timeline {
		track.Add(m.tick-last, m.msg)
		last = m.tick
	}
	track.Close(0)

	file := smf.New()
	file.TimeFormat = smf.MetricTicks(ticks)
	if err := file.Add(track); err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}
	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write midi file: %w", err)
	}
	return nil
}

// beatsToTicks reports false when beats does not fit below the last uint32
// tick, which stays free for the note-off of a zero-length note.
func beatsToTicks(beats float64, ticks int) (uint32, bool) {
	if beats <= 0 {
		return 0, true
	}
	t := math.Round(beats * float64(ticks))
	if t >= math.MaxUint32 || math.IsNaN(t) {
		return 0, false
	}
	return uint32(t), true
}
