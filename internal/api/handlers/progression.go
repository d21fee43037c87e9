package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/harmony-api/internal/logger"
	"github.com/Conceptual-Machines/harmony-api/internal/metrics"
	"github.com/Conceptual-Machines/harmony-api/internal/progression"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

type ProgressionHandler struct {
	engine  *theory.Engine
	service *progression.Service
	metrics *metrics.Recorder
}

func NewProgressionHandler(engine *theory.Engine, service *progression.Service, recorder *metrics.Recorder) *ProgressionHandler {
	return &ProgressionHandler{engine: engine, service: service, metrics: recorder}
}

// List answers GET /api/v1/progressions
func (h *ProgressionHandler) List(c *gin.Context) {
	templates, err := h.service.Templates()
	if err != nil {
		logger.Error("Failed to load progression catalogue", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "progression catalogue unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// template loads the :id template, answering 404/500 itself on failure
func (h *ProgressionHandler) template(c *gin.Context) (progression.Template, bool) {
	tmpl, err := h.service.Template(c.Param("id"))
	switch {
	case errors.Is(err, progression.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "progression template not found: " + c.Param("id")})
		return progression.Template{}, false
	case err != nil:
		logger.Error("Failed to load progression catalogue", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "progression catalogue unavailable"})
		return progression.Template{}, false
	}
	return tmpl, true
}

// Get answers GET /api/v1/progressions/:id
func (h *ProgressionHandler) Get(c *gin.Context) {
	tmpl, ok := h.template(c)
	if !ok {
		return
	}

	start := time.Now()
	root, mode := c.DefaultQuery("root", defaultRoot), queryMode(c)
	chords := h.service.GenericChords(root, mode, tmpl)
	track(c, h.metrics, "progression", start, true)

	c.JSON(http.StatusOK, gin.H{
		"template": tmpl,
		"root":     root,
		"mode":     progression.EffectiveMode(mode, tmpl),
		"chords":   chords,
	})
}

// Analysis answers GET /api/v1/progressions/:id/analysis
func (h *ProgressionHandler) Analysis(c *gin.Context) {
	tmpl, ok := h.template(c)
	if !ok {
		return
	}

	start := time.Now()
	root, mode := c.DefaultQuery("root", defaultRoot), queryMode(c)
	analysis := h.service.Analyze(root, mode, tmpl)
	track(c, h.metrics, "progression_analysis", start, true)

	c.JSON(http.StatusOK, gin.H{
		"template": tmpl.ID,
		"root":     root,
		"analysis": analysis,
	})
}

// Coltrane answers GET /api/v1/coltrane/:key
func (h *ProgressionHandler) Coltrane(c *gin.Context) {
	key := c.Param("key")
	if !theory.IsValidNote(key) {
		badRequest(c, "invalid key: "+key)
		return
	}

	start := time.Now()
	chords := progression.ColtraneChanges(key)
	track(c, h.metrics, "coltrane", start, true)
	c.JSON(http.StatusOK, gin.H{"key": key, "chords": chords})
}

// ReharmOption lists the reharmonization devices available for one diatonic chord.
type ReharmOption struct {
	Degree            int                 `json:"degree"`
	Chord             string              `json:"chord"`
	Roman             string              `json:"roman"`
	SecondaryDominant *theory.ChordSymbol `json:"secondaryDominant,omitempty"`
	TritoneSubstitute *theory.ChordSymbol `json:"tritoneSubstitute,omitempty"`
	RelatedII         *theory.ChordSymbol `json:"relatedII,omitempty"`
	Substitutes       []int               `json:"substitutes"`
}

// Reharm answers GET /api/v1/reharm/:root
func (h *ProgressionHandler) Reharm(c *gin.Context) {
	start := time.Now()
	root, mode := c.Param("root"), queryMode(c)
	chords := h.engine.DiatonicChords(h.engine.Scale(root, mode, false), mode, theory.BasicTensions)

	options := make([]ReharmOption, len(chords))
	for i, chord := range chords {
		opt := ReharmOption{
			Degree:            chord.Degree,
			Chord:             chord.Name,
			Roman:             chord.Roman,
			SecondaryDominant: chord.SecondaryDominant,
			Substitutes:       progression.DiatonicSubstitutes(chord.Degree, mode),
		}
		if chord.Quality == "7" {
			tritone := progression.TritoneSubstitute(chord.Root)
			ii := progression.RelatedII(chord.Root)
			opt.TritoneSubstitute, opt.RelatedII = &tritone, &ii
		}
		options[i] = opt
	}
	track(c, h.metrics, "reharm", start, true)

	c.JSON(http.StatusOK, gin.H{
		"root":             root,
		"mode":             mode,
		"options":          options,
		"modalInterchange": progression.ModalInterchangeChords(root),
	})
}

type AnalyzeRequest struct {
	Chords []string `json:"chords" binding:"required"`
}

// AnalyzeSymbols answers POST /api/v1/progressions/analyze for free-form chord lists
func (h *ProgressionHandler) AnalyzeSymbols(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(req.Chords) > maxProgressionChords {
		badRequest(c, "too many chords")
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": progression.AnalyzeProgression(req.Chords)})
}
