package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Conceptual-Machines/harmony-api/internal/config"
	"github.com/Conceptual-Machines/harmony-api/internal/logger"
	"github.com/Conceptual-Machines/harmony-api/internal/metrics"
	"github.com/Conceptual-Machines/harmony-api/internal/playback"
	"github.com/Conceptual-Machines/harmony-api/internal/progression"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
	"github.com/Conceptual-Machines/harmony-api/internal/voicing"
)

type PlaybackHandler struct {
	progressions *progression.Service
	defaults     config.EngineDefaults
	metrics      *metrics.Recorder
}

func NewPlaybackHandler(progressions *progression.Service, defaults config.EngineDefaults, recorder *metrics.Recorder) *PlaybackHandler {
	return &PlaybackHandler{progressions: progressions, defaults: defaults, metrics: recorder}
}

type PlaybackRequest struct {
	Mode  string            `json:"mode"` // chord or scale
	Notes playback.NoteList `json:"notes" binding:"required"`
}

// Playback answers POST /api/v1/playback with timed note events for a chord
// strum or an ascending scale.
func (h *PlaybackHandler) Playback(c *gin.Context) {
	var req PlaybackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(req.Notes) > maxPlaybackNotes {
		badRequest(c, "too many notes")
		return
	}

	render := playback.ChordEvents
	switch req.Mode {
	case "", "chord":
		req.Mode = "chord"
	case "scale":
		render = playback.ScaleEvents
	default:
		badRequest(c, "mode must be chord or scale")
		return
	}

	start := time.Now()
	events, err := render(req.Notes)
	track(c, h.metrics, "playback_"+req.Mode, start, err == nil)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": req.Mode, "events": events})
}

type ProgressionRef struct {
	ID   string `json:"id" binding:"required"`
	Root string `json:"root"`
	Mode string `json:"mode"`
}

type MIDIRequest struct {
	Chords        []string         `json:"chords"`
	Progression   *ProgressionRef  `json:"progression"`
	Voicing       string           `json:"voicing"`
	EnforceLimits *bool            `json:"enforceLimits"`
	Options       playback.Options `json:"options"`
	Tempo         float64          `json:"tempo"`
}

var errNoChords = errors.New("either chords or progression is required")

// chords resolves the request to chord symbols and voicing references
func (h *PlaybackHandler) chords(req MIDIRequest) ([]string, []voicing.ChordRef, error) {
	if req.Progression != nil {
		tmpl, err := h.progressions.Template(req.Progression.ID)
		if err != nil {
			return nil, nil, err
		}
		root, mode := req.Progression.Root, req.Progression.Mode
		if root == "" {
			root = defaultRoot
		}
		if mode == "" {
			mode = defaultMode
		}

		generated := h.progressions.GenericChords(root, mode, tmpl)
		symbols := make([]string, len(generated))
		refs := make([]voicing.ChordRef, len(generated))
		for i, chord := range generated {
			symbols[i] = chord.Name
			refs[i] = voicing.ChordRef{Root: chord.Root, Quality: chord.Quality}
		}
		return symbols, refs, nil
	}

	if len(req.Chords) == 0 {
		return nil, nil, errNoChords
	}
	refs := make([]voicing.ChordRef, len(req.Chords))
	for i, symbol := range req.Chords {
		parsed := theory.ParseChordSymbol(symbol)
		refs[i] = voicing.ChordRef{Root: parsed.Root, Quality: parsed.Quality}
	}
	return req.Chords, refs, nil
}

// MIDI answers POST /api/v1/midi. The progression is voice-led, laid out with
// a rhythm template and returned as a Standard MIDI File, or as the raw
// rendering with ?format=json.
func (h *PlaybackHandler) MIDI(c *gin.Context) {
	var req MIDIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	// zero means the configured default
	if req.Tempo != 0 {
		if err := playback.ValidateTempo(req.Tempo); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	symbols, refs, err := h.chords(req)
	switch {
	case errors.Is(err, progression.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "progression template not found: " + req.Progression.ID})
		return
	case err != nil:
		badRequest(c, err.Error())
		return
	}
	if len(refs) > maxProgressionChords {
		badRequest(c, "too many chords")
		return
	}

	first := voicing.KindRootlessA
	if req.Voicing != "" {
		if first, err = voicing.ParseKind(req.Voicing); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	start := time.Now()
	voicings, err := voicing.Sequence(refs, first)
	if err != nil {
		track(c, h.metrics, "midi_render", start, false)
		badRequest(c, err.Error())
		return
	}
	enforce := h.defaults.EnforceIntervalLimits
	if req.EnforceLimits != nil {
		enforce = *req.EnforceLimits
	}
	if enforce {
		for i := range voicings {
			voicings[i] = voicing.EnforceIntervalLimits(voicings[i])
		}
	}

	rendering, err := playback.ProgressionEvents(symbols, voicings, req.Options)
	if err != nil {
		track(c, h.metrics, "midi_render", start, false)
		badRequest(c, err.Error())
		return
	}
	track(c, h.metrics, "midi_render", start, true)

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, rendering)
		return
	}

	tempo := req.Tempo
	if tempo <= 0 {
		tempo = h.defaults.Tempo
	}
	var buf bytes.Buffer
	if err := playback.WriteSMF(&buf, rendering.Notes, tempo, h.defaults.TicksPerQuarter); err != nil {
		logger.Error("Failed to write MIDI file", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write midi file"})
		return
	}

	exportID := uuid.New().String()
	h.metrics.RecordMIDIExport(c.Request.Context(), exportID, len(rendering.Notes), buf.Len())
	logger.Info("MIDI export rendered", logger.Fields{
		"export_id": exportID,
		"chords":    len(symbols),
		"events":    len(rendering.Notes),
		"bytes":     buf.Len(),
	})

	c.Header("X-Export-ID", exportID)
	c.Header("Content-Disposition", `attachment; filename="progression.mid"`)
	c.Data(http.StatusOK, "audio/midi", buf.Bytes())
}
