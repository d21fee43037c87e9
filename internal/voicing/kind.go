package voicing

import (
	"fmt"
	"sort"
	"strings"
)

// Kind selects a voicing shape.
type Kind string

const (
	KindClose     Kind = "close"
	KindShell     Kind = "shell"
	KindRootlessA Kind = "rootlessA"
	KindRootlessB Kind = "rootlessB"
	KindDrop2     Kind = "drop2"
	KindQuartal   Kind = "quartal"
)

var kinds = map[string]Kind{
	"close":     KindClose,
	"shell":     KindShell,
	"rootlessa": KindRootlessA,
	"rootlessb": KindRootlessB,
	"drop2":     KindDrop2,
	"quartal":   KindQuartal,
}

// ParseKind reads a selector case-insensitively.
func ParseKind(s string) (Kind, error) {
	if k, ok := kinds[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown voicing type %q", s)
}

// Kinds lists the recognised selectors.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultOctaveFor returns the register a shape is normally played in.
func DefaultOctaveFor(k Kind) int {
	if k == KindShell {
		return DefaultShellOctave
	}
	return DefaultOctave
}

// Generate dispatches to the shape named by k.
func Generate(k Kind, root, quality string, octave int) (Voicing, error) {
	switch k {
	case KindClose:
		return Close(root, quality, octave), nil
	case KindShell:
		return Shell(root, quality, octave), nil
	case KindRootlessA:
		return RootlessA(root, quality, octave), nil
	case KindRootlessB:
		return RootlessB(root, quality, octave), nil
	case KindDrop2:
		return Drop2(root, quality, octave), nil
	case KindQuartal:
		return Quartal(root, octave, DefaultQuartalSize), nil
	default:
		return nil, fmt.Errorf("unknown voicing type %q", k)
	}
}
