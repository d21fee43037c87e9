package models

import "github.com/Conceptual-Machines/harmony-api/internal/theory"

// StaffMode tells a notation renderer whether notes are a line or a stack.
type StaffMode string

const (
	StaffModeScale StaffMode = "scale"
	StaffModeChord StaffMode = "chord"
)

// StaffNote is one notehead. Octave is omitted when the renderer should
// choose the register itself.
type StaffNote struct {
	Note     string `json:"note"`
	Octave   *int   `json:"octave,omitempty"`
	IsBlue   bool   `json:"isBlue,omitempty"`
	BlueNote string `json:"blueNote,omitempty"`
}

// StaffPayload is everything a staff renderer needs for one drawing.
type StaffPayload struct {
	Mode         StaffMode           `json:"mode"`
	KeySignature theory.KeySignature `json:"keySignature"`
	Notes        []StaffNote         `json:"notes"`
	AvoidNotes   []int               `json:"avoidNotes,omitempty"`
}

// HighlightRole styles a highlighted key.
type HighlightRole string

const (
	RoleRoot    HighlightRole = "root"
	RoleChord   HighlightRole = "chord"
	RoleTension HighlightRole = "tension"
)

// KeyHighlight marks one piano key. Note may carry an octave ("E4") or not ("E").
type KeyHighlight struct {
	Note string        `json:"note"`
	Role HighlightRole `json:"role"`
}
