package progression

import (
	"errors"
	"strings"

	"github.com/Conceptual-Machines/harmony-api/internal/logger"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

// ErrTemplateNotFound is returned for an unknown template id.
var ErrTemplateNotFound = errors.New("progression template not found")

// Theory is the subset of the theory engine the service depends on.
type Theory interface {
	Scale(root, mode string, includeBlueNotes bool) []theory.ScaleDegree
	DiatonicChords(scale []theory.ScaleDegree, mode string, mask theory.TensionMask) []theory.Chord
}

// Service resolves progression templates into concrete chords.
type Service struct {
	theory Theory
}

// NewService creates a progression service backed by a theory engine.
func NewService(t Theory) *Service {
	return &Service{theory: t}
}

// Templates returns the template catalogue. Callers get their own copies.
func (s *Service) Templates() ([]Template, error) {
	templates, err := loadCatalogue()
	if err != nil {
		return nil, err
	}
	out := make([]Template, len(templates))
	for i, t := range templates {
		out[i] = t.Clone()
	}
	return out, nil
}

// Template looks up a catalogue entry by id.
func (s *Service) Template(id string) (Template, error) {
	templates, err := loadCatalogue()
	if err != nil {
		return Template{}, err
	}
	for _, t := range templates {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return Template{}, ErrTemplateNotFound
}

// EffectiveMode forces the natural minor for minor-only templates.
func EffectiveMode(mode string, t Template) string {
	if t.IsMinor && !strings.Contains(mode, "Minor") {
		return "Minor"
	}
	return mode
}

// GenericChords resolves a template in a key. The diatonic chords are built
// with sevenths only; every returned chord is an independent copy. Entries that
// cannot be resolved are dropped.
func (s *Service) GenericChords(root, mode string, t Template) []theory.Chord {
	if s == nil || s.theory == nil {
		logger.Warn("Theory engine not initialized", logger.Fields{
			"template": t.ID,
			"root":     root,
		})
		return []theory.Chord{}
	}

	if t.Degrees.Custom {
		return ColtraneChanges(root)
	}

	mode = EffectiveMode(mode, t)
	diatonic := s.theory.DiatonicChords(s.theory.Scale(root, mode, false), mode, theory.BasicTensions)
	inRange := func(degree int) bool {
		return degree >= 0 && degree < len(diatonic)
	}

	chords := make([]theory.Chord, 0, len(t.Degrees.Steps))
	for _, step := range t.Degrees.Steps {
		switch step.Kind {
		case StepDiatonic:
			if inRange(step.Degree) {
				chords = append(chords, diatonic[step.Degree].Clone())
			}
		case StepBorrowed:
			if inRange(step.Degree) {
				chords = append(chords, BorrowedChord(diatonic[step.Degree]))
			}
		case StepTritone:
			if len(chords) > 0 {
				last := len(chords) - 1
				chords[last] = TritoneSubstituteChord(chords[last])
			}
		}
	}
	return chords
}

// ChordAnalysis is the role analysis of one chord in a sequence.
type ChordAnalysis struct {
	Index int    `json:"index"`
	Chord string `json:"chord"`
	Role  string `json:"role,omitempty"`
}

// Analyze resolves a template and reports its ii-V and V-I roles.
func (s *Service) Analyze(root, mode string, t Template) []ChordAnalysis {
	chords := s.GenericChords(root, mode, t)
	names := make([]string, len(chords))
	for i, c := range chords {
		names[i] = c.Name
	}
	return AnalyzeProgression(names)
}
