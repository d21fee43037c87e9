package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/harmony-api/internal/config"
	"github.com/Conceptual-Machines/harmony-api/internal/contracts"
	"github.com/Conceptual-Machines/harmony-api/internal/metrics"
	"github.com/Conceptual-Machines/harmony-api/internal/models"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
	"github.com/Conceptual-Machines/harmony-api/internal/voicing"
)

type VoicingHandler struct {
	engine   *theory.Engine
	defaults config.EngineDefaults
	metrics  *metrics.Recorder
}

func NewVoicingHandler(engine *theory.Engine, defaults config.EngineDefaults, recorder *metrics.Recorder) *VoicingHandler {
	return &VoicingHandler{engine: engine, defaults: defaults, metrics: recorder}
}

type VoicingRequest struct {
	Root          string `json:"root" binding:"required"`
	Quality       string `json:"quality"`
	Type          string `json:"type"`
	Octave        *int   `json:"octave"`
	EnforceLimits *bool  `json:"enforceLimits"`

	// Upper structure triads; TriadRoot switches the shape on
	TriadRoot  string `json:"triadRoot"`
	MinorTriad bool   `json:"minorTriad"`
}

type VoicingResponse struct {
	Root     string                `json:"root"`
	Quality  string                `json:"quality"`
	Type     string                `json:"type"`
	Voicing  voicing.Voicing       `json:"voicing"`
	Notes    []string              `json:"notes"`
	Pitches  []int                 `json:"pitches"`
	Stats    voicing.Stats         `json:"stats"`
	Staff    models.StaffPayload   `json:"staff"`
	Keyboard []models.KeyHighlight `json:"keyboard"`
}

// Voicing answers POST /api/v1/voicings. Without a type it returns every
// standard shape plus a two-hand layout.
func (h *VoicingHandler) Voicing(c *gin.Context) {
	var req VoicingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Quality == "" {
		req.Quality = defaultQuality
	}

	start := time.Now()
	if req.Type == "" && req.TriadRoot == "" {
		octave := h.octave(req.Octave, voicing.DefaultOctave)
		set := voicing.All(req.Root, req.Quality)
		hands := voicing.TwoHand(req.Root, req.Quality, octave)
		track(c, h.metrics, "voicing_set", start, true)

		c.JSON(http.StatusOK, gin.H{
			"root":     req.Root,
			"quality":  req.Quality,
			"voicings": set,
			"twoHand":  hands,
		})
		return
	}

	var (
		v    voicing.Voicing
		kind string
	)
	if req.TriadRoot != "" {
		kind = "upperStructure"
		v = voicing.UpperStructure(req.Root, req.TriadRoot, req.MinorTriad, h.octave(req.Octave, voicing.DefaultOctave))
	} else {
		k, err := voicing.ParseKind(req.Type)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		kind = string(k)
		v, err = voicing.Generate(k, req.Root, req.Quality, h.octave(req.Octave, voicing.DefaultOctaveFor(k)))
		if err != nil {
			track(c, h.metrics, "voicing", start, false)
			badRequest(c, err.Error())
			return
		}
	}

	enforce := h.defaults.EnforceIntervalLimits
	if req.EnforceLimits != nil {
		enforce = *req.EnforceLimits
	}
	if enforce {
		v = voicing.EnforceIntervalLimits(v)
	}
	track(c, h.metrics, "voicing", start, true)

	key := h.engine.KeySignature(req.Root, defaultMode)
	c.JSON(http.StatusOK, VoicingResponse{
		Root:     req.Root,
		Quality:  req.Quality,
		Type:     kind,
		Voicing:  v,
		Notes:    voicing.NoteNames(v),
		Pitches:  v.Pitches(),
		Stats:    voicing.Analyze(v),
		Staff:    contracts.VoicingStaff(key, v),
		Keyboard: contracts.VoicingHighlights(req.Root, req.Quality, v),
	})
}

// octave returns the requested register, or the shape's default shifted by
// the configured default octave.
func (h *VoicingHandler) octave(requested *int, shapeDefault int) int {
	if requested != nil {
		return *requested
	}
	if h.defaults.Octave > 0 {
		return shapeDefault + h.defaults.Octave - voicing.DefaultOctave
	}
	return shapeDefault
}

type VoiceLeadingRequest struct {
	// Sequence mode
	Chords []voicing.ChordRef `json:"chords"`
	First  string             `json:"first"`

	// Single step mode
	Previous voicing.Voicing   `json:"previous"`
	Target   *voicing.ChordRef `json:"target"`
}

// VoiceLeading answers POST /api/v1/voice-leading. Given a chord list it voices
// the whole sequence; given previous and target it picks the next voicing.
func (h *VoicingHandler) VoiceLeading(c *gin.Context) {
	var req VoiceLeadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	start := time.Now()
	if req.Target != nil {
		next := voicing.OptimizeVoiceLeading(req.Previous, req.Target.Root, req.Target.Quality)
		track(c, h.metrics, "voice_leading", start, true)
		c.JSON(http.StatusOK, gin.H{
			"voicing":  next,
			"notes":    voicing.NoteNames(next),
			"movement": voicing.Movement(req.Previous, next),
		})
		return
	}

	if len(req.Chords) == 0 {
		badRequest(c, "either chords or target is required")
		return
	}
	if len(req.Chords) > maxProgressionChords {
		badRequest(c, "too many chords")
		return
	}
	first := voicing.KindRootlessA
	if req.First != "" {
		k, err := voicing.ParseKind(req.First)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		first = k
	}

	voicings, err := voicing.Sequence(req.Chords, first)
	if err != nil {
		track(c, h.metrics, "voice_leading", start, false)
		badRequest(c, err.Error())
		return
	}

	steps := make([]gin.H, len(voicings))
	total := 0
	for i, v := range voicings {
		move := 0
		if i > 0 {
			move = voicing.Movement(voicings[i-1], v)
		}
		total += move
		steps[i] = gin.H{
			"chord":    req.Chords[i],
			"voicing":  v,
			"notes":    voicing.NoteNames(v),
			"movement": move,
		}
	}
	track(c, h.metrics, "voice_leading", start, true)

	c.JSON(http.StatusOK, gin.H{"voicings": steps, "totalMovement": total})
}
