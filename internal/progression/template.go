package progression

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Conceptual-Machines/harmony-api/pkg/embedded"
)

// StepKind distinguishes the entries a template's degree list can hold.
type StepKind int

const (
	// StepInvalid entries are dropped when the progression is resolved.
	StepInvalid StepKind = iota
	StepDiatonic
	StepTritone
	StepBorrowed
)

const (
	tritoneMarker  = "tritone"
	customMarker   = "custom"
	borrowedSuffix = "m"
)

// Step is one entry of a template's degree list: a 0-based scale degree, the
// tritone marker, or a degree borrowed from the parallel minor ("3m").
type Step struct {
	Kind   StepKind
	Degree int
	raw    string
}

// DiatonicStep returns a plain degree step.
func DiatonicStep(degree int) Step {
	return Step{Kind: StepDiatonic, Degree: degree}
}

// BorrowedStep returns a modal-interchange step on degree.
func BorrowedStep(degree int) Step {
	return Step{Kind: StepBorrowed, Degree: degree}
}

// TritoneStep returns the tritone-substitution marker.
func TritoneStep() Step {
	return Step{Kind: StepTritone}
}

func (s Step) String() string {
	switch s.Kind {
	case StepDiatonic:
		return strconv.Itoa(s.Degree)
	case StepTritone:
		return tritoneMarker
	case StepBorrowed:
		return strconv.Itoa(s.Degree) + borrowedSuffix
	default:
		return s.raw
	}
}

// MarshalJSON writes diatonic steps as numbers and markers as strings.
func (s Step) MarshalJSON() ([]byte, error) {
	if s.Kind == StepDiatonic {
		return json.Marshal(s.Degree)
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts integers, "tritone" and "<n>m". Anything else decodes
// to an invalid step rather than failing, so the entry is dropped at resolve time.
func (s *Step) UnmarshalJSON(data []byte) error {
	var degree int
	if err := json.Unmarshal(data, &degree); err == nil {
		*s = DiatonicStep(degree)
		return nil
	}

	var marker string
	if err := json.Unmarshal(data, &marker); err != nil {
		return fmt.Errorf("degree must be a number or string: %w", err)
	}
	*s = ParseStep(marker)
	return nil
}

// ParseStep parses the string form of a step.
func ParseStep(marker string) Step {
	if marker == tritoneMarker {
		return TritoneStep()
	}
	if degree, err := strconv.Atoi(marker); err == nil {
		return DiatonicStep(degree)
	}
	if strings.HasSuffix(marker, borrowedSuffix) {
		if degree, err := strconv.Atoi(strings.TrimSuffix(marker, borrowedSuffix)); err == nil {
			return BorrowedStep(degree)
		}
	}
	return Step{Kind: StepInvalid, raw: marker}
}

// Degrees is either a list of steps or the "custom" marker handing the whole
// progression to a dedicated generator.
type Degrees struct {
	Custom bool
	Steps  []Step
}

// MarshalJSON writes "custom" or the step list.
func (d Degrees) MarshalJSON() ([]byte, error) {
	if d.Custom {
		return json.Marshal(customMarker)
	}
	steps := d.Steps
	if steps == nil {
		steps = []Step{}
	}
	return json.Marshal(steps)
}

// UnmarshalJSON reads "custom" or a list of steps.
func (d *Degrees) UnmarshalJSON(data []byte) error {
	var marker string
	if err := json.Unmarshal(data, &marker); err == nil {
		if marker != customMarker {
			return fmt.Errorf("unknown degrees marker %q", marker)
		}
		*d = Degrees{Custom: true}
		return nil
	}

	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return fmt.Errorf("failed to parse degrees: %w", err)
	}
	*d = Degrees{Steps: steps}
	return nil
}

// Template is a named progression pattern expressed in scale degrees.
type Template struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Degrees            Degrees `json:"degrees"`
	Roman              string  `json:"roman"`
	Description        string  `json:"description"`
	IsMinor            bool    `json:"isMinor,omitempty"`
	IsModalInterchange bool    `json:"isModalInterchange,omitempty"`
}

// Clone returns a copy that shares no slices with t.
func (t Template) Clone() Template {
	out := t
	if t.Degrees.Steps != nil {
		out.Degrees.Steps = append([]Step{}, t.Degrees.Steps...)
	}
	return out
}

var (
	catalogueOnce sync.Once
	catalogue     []Template
	catalogueErr  error
)

// loadCatalogue parses the embedded template list once.
func loadCatalogue() ([]Template, error) {
	catalogueOnce.Do(func() {
		catalogue, catalogueErr = ParseTemplates(embedded.ProgressionsJSON)
	})
	return catalogue, catalogueErr
}

// ParseTemplates decodes a JSON template list and checks ids are present and unique.
func ParseTemplates(data []byte) ([]Template, error) {
	var templates []Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse progression templates: %w", err)
	}

	seen := make(map[string]bool, len(templates))
	for i, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %d has no id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return templates, nil
}
