package embedded

import (
	_ "embed"
)

// Progression template catalogue
//
//go:embed data/progressions.json
var ProgressionsJSON []byte
