package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/harmony-api/internal/contracts"
	"github.com/Conceptual-Machines/harmony-api/internal/metrics"
	"github.com/Conceptual-Machines/harmony-api/internal/models"
	"github.com/Conceptual-Machines/harmony-api/internal/playback"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

type TheoryHandler struct {
	engine  *theory.Engine
	metrics *metrics.Recorder
}

func NewTheoryHandler(engine *theory.Engine, recorder *metrics.Recorder) *TheoryHandler {
	return &TheoryHandler{engine: engine, metrics: recorder}
}

// KeySignature answers GET /api/v1/keys/:root
func (h *TheoryHandler) KeySignature(c *gin.Context) {
	start := time.Now()
	root, mode := c.Param("root"), queryMode(c)
	key := h.engine.KeySignature(root, mode)
	track(c, h.metrics, "key_signature", start, true)

	c.JSON(http.StatusOK, gin.H{
		"root":         root,
		"mode":         mode,
		"keySignature": key,
	})
}

type ScaleResponse struct {
	Root               string               `json:"root"`
	Mode               string               `json:"mode"`
	KeySignature       theory.KeySignature  `json:"keySignature"`
	Scale              []theory.ScaleDegree `json:"scale"`
	CharacteristicNote string               `json:"characteristicNote,omitempty"`
	Staff              models.StaffPayload  `json:"staff"`
	Playback           playback.NoteList    `json:"playback"`
}

// Scale answers GET /api/v1/scales/:root
func (h *TheoryHandler) Scale(c *gin.Context) {
	blue, ok := queryBool(c, "blue")
	if !ok {
		return
	}

	start := time.Now()
	root, mode := c.Param("root"), queryMode(c)
	key := h.engine.KeySignature(root, mode)
	scale := h.engine.Scale(root, mode, blue)
	characteristic, _ := theory.CharacteristicNote(theory.ResolveMode(mode).Name)
	track(c, h.metrics, "scale", start, true)

	c.JSON(http.StatusOK, ScaleResponse{
		Root:               root,
		Mode:               mode,
		KeySignature:       key,
		Scale:              scale,
		CharacteristicNote: characteristic,
		Staff:              contracts.ScaleStaff(key, scale),
		Playback:           playback.FromScale(scale),
	})
}

type ChordsRequest struct {
	Root      string `json:"root" binding:"required"`
	Mode      string `json:"mode"`
	Tensions  []int  `json:"tensions"`
	Preset    string `json:"preset"` // basic, jazz or all
	BlueNotes bool   `json:"blueNotes"`
}

var tensionPresets = map[string]theory.TensionMask{
	"basic": theory.BasicTensions,
	"jazz":  theory.JazzTensions,
	"all":   theory.AllTensions,
}

// ChordView is a diatonic chord with its rendering payloads.
type ChordView struct {
	theory.Chord
	Analysis    string                     `json:"analysis"`
	TensionInfo theory.TensionAvailability `json:"tensionInfo"`
	Staff       models.StaffPayload        `json:"staff"`
	Keyboard    []models.KeyHighlight      `json:"keyboard"`
}

// Chords answers POST /api/v1/chords
func (h *TheoryHandler) Chords(c *gin.Context) {
	var req ChordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Mode == "" {
		req.Mode = defaultMode
	}

	mask := theory.BasicTensions
	switch {
	case req.Preset != "":
		preset, ok := tensionPresets[req.Preset]
		if !ok {
			badRequest(c, "unknown tension preset: "+req.Preset)
			return
		}
		mask = preset
	case req.Tensions != nil:
		mask = theory.TensionMaskFrom(req.Tensions)
	}

	start := time.Now()
	key := h.engine.KeySignature(req.Root, req.Mode)
	scale := h.engine.Scale(req.Root, req.Mode, req.BlueNotes)
	chords := h.engine.DiatonicChords(scale, req.Mode, mask)

	views := make([]ChordView, len(chords))
	for i, chord := range chords {
		views[i] = ChordView{
			Chord:       chord,
			Analysis:    chord.AnalysisString(chord.Roman),
			TensionInfo: theory.TensionInfo(chord.Degree, req.Mode),
			Staff:       contracts.ChordStaff(key, chord),
			Keyboard:    contracts.ChordHighlights(chord),
		}
	}
	track(c, h.metrics, "diatonic_chords", start, true)

	c.JSON(http.StatusOK, gin.H{
		"root":         req.Root,
		"mode":         req.Mode,
		"tensions":     mask,
		"keySignature": key,
		"scale":        scale,
		"chords":       views,
	})
}

// Circle answers GET /api/v1/circle/:key
func (h *TheoryHandler) Circle(c *gin.Context) {
	key := c.Param("key")
	related, ok := theory.LookupRelatedKeys(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "key not on the circle of fifths: " + key})
		return
	}

	resp := gin.H{
		"related": related,
		"circle":  theory.CircleOfFifths(),
	}
	if to := c.Query("to"); to != "" {
		relationship, ok := theory.KeyRelationship(key, to)
		if !ok {
			badRequest(c, "key not on the circle of fifths: "+to)
			return
		}
		resp["relationship"] = gin.H{"to": to, "label": relationship}
	}
	c.JSON(http.StatusOK, resp)
}

// ScaleLibrary answers GET /api/v1/scale-library/:root
func (h *TheoryHandler) ScaleLibrary(c *gin.Context) {
	root := c.Param("root")
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusOK, gin.H{"scales": theory.ScaleNames()})
		return
	}
	if _, ok := theory.ScaleFormulas[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown scale: " + name})
		return
	}

	resp := gin.H{
		"root":    root,
		"name":    name,
		"notes":   theory.BuildScale(root, name),
		"aliases": theory.ModeAliases(name),
	}
	if info, ok := theory.LookupScaleInfo(name); ok {
		resp["info"] = info
	}
	if avoid := theory.AvoidNoteConfig(name); len(avoid) > 0 {
		resp["avoidNotes"] = avoid
	}
	c.JSON(http.StatusOK, resp)
}

// ChordScales answers GET /api/v1/chord-scales/:symbol
func (h *TheoryHandler) ChordScales(c *gin.Context) {
	symbol := c.Param("symbol")
	c.JSON(http.StatusOK, gin.H{
		"symbol": theory.ParseChordSymbol(symbol),
		"scales": theory.AvailableScales(symbol),
	})
}
