package voicing

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LowIntervalLimits maps an interval class to the lowest MIDI pitch its lower
// note can sit on before the interval turns muddy.
var LowIntervalLimits = map[int]int{
	1:  28, // m2: E1
	2:  40, // M2: E2
	3:  40, // m3: E2
	4:  39, // M3: Eb2
	5:  34, // P4: Bb1
	6:  34, // TT: Bb1
	7:  22, // P5: Bb0
	8:  27, // m6: Eb1
	9:  27, // M6: Eb1
	10: 27, // m7: Eb1
	11: 27, // M7: Eb1
}

// EnforceIntervalLimits walks adjacent pairs once, left to right, and raises
// the lower note of any pair under its limit by an octave. Later pairs see
// earlier corrections; non-adjacent pairs are not checked.
func EnforceIntervalLimits(v Voicing) Voicing {
	out := append(Voicing{}, v...)
	for i := 1; i < len(out); i++ {
		prev, curr := out[i-1].Pitch(), out[i].Pitch()
		interval := curr - prev
		if interval < 0 {
			interval = -interval
		}

		limit, ok := LowIntervalLimits[interval%12]
		if !ok || min(prev, curr) >= limit {
			continue
		}
		if prev < curr {
			out[i-1].Octave++
		} else {
			out[i].Octave++
		}
	}
	return out
}

// Movement sums the absolute semitone motion between matching positions of
// two voicings over their overlapping length.
func Movement(from, to Voicing) int {
	total := 0
	for i := 0; i < len(from) && i < len(to); i++ {
		d := to[i].Pitch() - from[i].Pitch()
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}

// OptimizeVoiceLeading picks, among rootless A, rootless B and drop 2, the
// shape of the target chord that moves least from prev. Ties go to the
// earlier candidate; an empty prev yields rootless A.
func OptimizeVoiceLeading(prev Voicing, root, quality string) Voicing {
	best := RootlessA(root, quality, DefaultOctave)
	if len(prev) == 0 {
		return best
	}

	bestMove := Movement(prev, best)
	for _, candidate := range []Voicing{
		RootlessB(root, quality, DefaultOctave),
		Drop2(root, quality, DefaultOctave),
	} {
		if m := Movement(prev, candidate); m < bestMove {
			best, bestMove = candidate, m
		}
	}
	return best
}

// ChordRef names a chord to voice.
type ChordRef struct {
	Root    string `json:"root"`
	Quality string `json:"quality"`
}

// Sequence voices a chord list. The first chord uses kind; every following
// chord is voice-led from the one before it.
func Sequence(chords []ChordRef, first Kind) ([]Voicing, error) {
	out := make([]Voicing, 0, len(chords))
	var prev Voicing
	for i, c := range chords {
		var v Voicing
		if i == 0 {
			var err error
			v, err = Generate(first, c.Root, c.Quality, DefaultOctaveFor(first))
			if err != nil {
				return nil, err
			}
		} else {
			v = OptimizeVoiceLeading(prev, c.Root, c.Quality)
		}
		out = append(out, v)
		prev = v
	}
	return out, nil
}

// Stats summarises the register of a voicing in MIDI numbers.
type Stats struct {
	Lowest   int     `json:"lowest"`
	Highest  int     `json:"highest"`
	Span     int     `json:"span"`
	Centroid float64 `json:"centroid"`
	Spread   float64 `json:"spread"`
}

// Analyze reports the range, mean pitch and standard deviation of a voicing.
func Analyze(v Voicing) Stats {
	if len(v) == 0 {
		return Stats{}
	}

	pitches := make([]float64, len(v))
	for i, t := range v {
		pitches[i] = float64(t.Pitch())
	}

	lowest, highest := int(floats.Min(pitches)), int(floats.Max(pitches))
	s := Stats{
		Lowest:   lowest,
		Highest:  highest,
		Span:     highest - lowest,
		Centroid: stat.Mean(pitches, nil),
	}
	if len(pitches) > 1 {
		_, s.Spread = stat.MeanStdDev(pitches, nil)
	}
	return s
}
