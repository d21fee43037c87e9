package handlers

const (
	defaultMode    = "Major"
	defaultRoot    = "C"
	defaultQuality = "maj7"

	// Query and body limits
	maxProgressionChords = 64
	maxPlaybackNotes     = 128
)
