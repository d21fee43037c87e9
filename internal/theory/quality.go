package theory

import (
	"sort"
	"strings"
)

// DefaultQuality is the quality used when a quality string is not recognised.
const DefaultQuality = "maj7"

// chordIntervals maps a quality suffix to semitone offsets from the root.
var chordIntervals = map[string][]int{
	"maj7":  {0, 4, 7, 11},
	"maj9":  {0, 4, 7, 11, 14},
	"maj13": {0, 4, 7, 11, 14, 21},
	"6":     {0, 4, 7, 9},
	"6/9":   {0, 4, 7, 9, 14},

	"m7":    {0, 3, 7, 10},
	"m9":    {0, 3, 7, 10, 14},
	"m11":   {0, 3, 7, 10, 14, 17},
	"m6":    {0, 3, 7, 9},
	"mMaj7": {0, 3, 7, 11},

	"7":    {0, 4, 7, 10},
	"9":    {0, 4, 7, 10, 14},
	"13":   {0, 4, 7, 10, 14, 21},
	"7#11": {0, 4, 7, 10, 18},
	"7b9":  {0, 4, 7, 10, 13},
	"7#9":  {0, 4, 7, 10, 15},
	"7alt": {0, 4, 6, 10, 13, 15},

	"m7b5":   {0, 3, 6, 10},
	"dim7":   {0, 3, 6, 9},
	"aug":    {0, 4, 8},
	"7#5":    {0, 4, 8, 10},
	"maj7#5": {0, 4, 8, 11},
}

// Intervals returns a copy of the semitone offsets for a quality, falling back
// to maj7 for unknown qualities.
func Intervals(quality string) []int {
	intervals, ok := chordIntervals[quality]
	if !ok {
		intervals = chordIntervals[DefaultQuality]
	}
	return append([]int{}, intervals...)
}

// IsKnownQuality reports whether the quality has its own interval entry.
func IsKnownQuality(quality string) bool {
	_, ok := chordIntervals[quality]
	return ok
}

// Qualities lists the recognised quality strings.
func Qualities() []string {
	out := make([]string, 0, len(chordIntervals))
	for q := range chordIntervals {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}

// IsDiminished reports whether a quality is diminished or half-diminished.
func IsDiminished(quality string) bool {
	return strings.Contains(quality, "dim") || strings.Contains(quality, "m7b5")
}

// IsMinorQuality reports whether a quality has a minor third.
func IsMinorQuality(quality string) bool {
	if IsDiminished(quality) {
		return true
	}
	return strings.HasPrefix(quality, "m") && !strings.HasPrefix(quality, "maj")
}
