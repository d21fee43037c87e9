package theory

import "fmt"

// Function is the harmonic function of a chord within its key.
type Function string

const (
	FunctionTonic       Function = "Tonic"
	FunctionSubdominant Function = "Subdominant"
	FunctionDominant    Function = "Dominant"
)

// Short returns the T / SD / D abbreviation.
func (f Function) Short() string {
	switch f {
	case FunctionTonic:
		return "T"
	case FunctionSubdominant:
		return "SD"
	case FunctionDominant:
		return "D"
	default:
		return ""
	}
}

// Tension degrees.
const (
	Ninth      = 9
	Eleventh   = 11
	Thirteenth = 13
)

// degreeRule holds everything the chord generator needs for one scale position.
type degreeRule struct {
	Triad    string
	Seventh  string
	Function Function
	Allowed  map[int]bool
	Avoid    []int
}

type ruleSet [7]degreeRule

const (
	fnT  = FunctionTonic
	fnSD = FunctionSubdominant
	fnD  = FunctionDominant
)

func allow(ninth, eleventh, thirteenth bool) map[int]bool {
	return map[int]bool{Ninth: ninth, Eleventh: eleventh, Thirteenth: thirteenth}
}

// parentRules encode classical avoid-note theory for each parent scale.
var parentRules = map[Parent]ruleSet{
	ParentMajor: {
		{Triad: "", Seventh: "maj7", Function: fnT, Allowed: allow(true, false, true), Avoid: []int{Eleventh}},
		{Triad: "m", Seventh: "m7", Function: fnSD, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "m", Seventh: "m7", Function: fnT, Allowed: allow(false, true, false), Avoid: []int{Ninth, Thirteenth}},
		{Triad: "", Seventh: "maj7", Function: fnSD, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "", Seventh: "7", Function: fnD, Allowed: allow(true, false, true), Avoid: []int{Eleventh}},
		{Triad: "m", Seventh: "m7", Function: fnT, Allowed: allow(true, true, false), Avoid: []int{Thirteenth}},
		{Triad: "dim", Seventh: "m7b5", Function: fnD, Allowed: allow(false, true, false), Avoid: []int{Ninth}},
	},
	ParentNaturalMinor: {
		{Triad: "m", Seventh: "m7", Function: fnT, Allowed: allow(true, true, false), Avoid: []int{Thirteenth}},
		{Triad: "dim", Seventh: "m7b5", Function: fnSD, Allowed: allow(false, true, false), Avoid: []int{Ninth, Thirteenth}},
		{Triad: "", Seventh: "maj7", Function: fnT, Allowed: allow(true, false, true), Avoid: []int{Eleventh}},
		{Triad: "m", Seventh: "m7", Function: fnSD, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "m", Seventh: "m7", Function: fnD, Allowed: allow(false, true, false), Avoid: []int{Ninth, Thirteenth}},
		{Triad: "", Seventh: "maj7", Function: fnSD, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "", Seventh: "7", Function: fnD, Allowed: allow(true, false, true), Avoid: []int{Eleventh}},
	},
	ParentHarmonicMinor: {
		{Triad: "m", Seventh: "mMaj7", Function: fnT, Allowed: allow(true, true, false), Avoid: []int{Thirteenth}},
		{Triad: "dim", Seventh: "m7b5", Function: fnSD, Allowed: allow(false, true, true), Avoid: []int{Ninth}},
		{Triad: "aug", Seventh: "maj7#5", Function: fnT, Allowed: allow(true, false, true), Avoid: []int{Eleventh}},
		{Triad: "m", Seventh: "m7", Function: fnSD, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "", Seventh: "7", Function: fnD, Allowed: allow(true, false, true), Avoid: []int{Eleventh}},
		{Triad: "", Seventh: "maj7", Function: fnSD, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "dim", Seventh: "dim7", Function: fnD, Allowed: allow(false, true, true), Avoid: []int{Ninth}},
	},
	ParentMelodicMinor: {
		{Triad: "m", Seventh: "mMaj7", Function: fnT, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "m", Seventh: "m7", Function: fnSD, Allowed: allow(false, true, true), Avoid: []int{Ninth}},
		{Triad: "aug", Seventh: "maj7#5", Function: fnT, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "", Seventh: "7", Function: fnSD, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "", Seventh: "7", Function: fnD, Allowed: allow(true, false, true), Avoid: []int{Eleventh}},
		{Triad: "dim", Seventh: "m7b5", Function: fnSD, Allowed: allow(true, true, true), Avoid: []int{}},
		{Triad: "dim", Seventh: "m7b5", Function: fnD, Allowed: allow(false, true, true), Avoid: []int{Ninth}},
	},
}

type ruleKey struct {
	parent Parent
	degree int
}

// modeRules is keyed by (parent, starting degree) and built once at init.
var modeRules = mustBuildRules()

// buildRules rotates each parent table for every mode that starts on one of its
// degrees. Qualities and tensions follow the rotation; functions stay positional.
func buildRules() (map[ruleKey]ruleSet, error) {
	out := make(map[ruleKey]ruleSet, len(parentRules)*7)
	for parent, base := range parentRules {
		for degree := 1; degree <= 7; degree++ {
			var set ruleSet
			for i := range set {
				rule := base[(i+degree-1)%7]
				rule.Function = base[i].Function
				set[i] = rule
			}
			if err := validateRules(set); err != nil {
				return nil, fmt.Errorf("rules for %s degree %d: %w", parent, degree, err)
			}
			out[ruleKey{parent: parent, degree: degree}] = set
		}
	}
	for name, m := range modes {
		if _, ok := out[ruleKey{parent: m.Parent, degree: m.Degree}]; !ok {
			return nil, fmt.Errorf("mode %q has no rule table", name)
		}
	}
	return out, nil
}

func mustBuildRules() map[ruleKey]ruleSet {
	rules, err := buildRules()
	if err != nil {
		panic(err)
	}
	return rules
}

func validateRules(set ruleSet) error {
	for i, rule := range set {
		if rule.Seventh == "" {
			return fmt.Errorf("degree %d: missing seventh quality", i+1)
		}
		if rule.Function.Short() == "" {
			return fmt.Errorf("degree %d: invalid function %q", i+1, rule.Function)
		}
		for _, tension := range []int{Ninth, Eleventh, Thirteenth} {
			if _, ok := rule.Allowed[tension]; !ok {
				return fmt.Errorf("degree %d: tension %d not covered", i+1, tension)
			}
		}
		for _, avoid := range rule.Avoid {
			if rule.Allowed[avoid] {
				return fmt.Errorf("degree %d: tension %d both allowed and avoided", i+1, avoid)
			}
		}
	}
	return nil
}

func rulesFor(m Mode) ruleSet {
	return modeRules[ruleKey{parent: m.Parent, degree: m.Degree}]
}
