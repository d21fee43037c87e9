package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/harmony-api/internal/config"
	"github.com/Conceptual-Machines/harmony-api/internal/models"
	"github.com/Conceptual-Machines/harmony-api/internal/progression"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
	"github.com/Conceptual-Machines/harmony-api/internal/voicing"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	engine := theory.NewEngine()
	progressions := progression.NewService(engine)
	defaults := config.EngineDefaults{Octave: 4, Tempo: 120, TicksPerQuarter: 480, EnforceIntervalLimits: true}

	router.GET("/health", HealthCheck(progressions))
	router.GET("/api/metrics", NewMetricsHandler("test").GetMetrics)

	v1 := router.Group("/api/v1")
	theoryHandler := NewTheoryHandler(engine, nil)
	v1.GET("/keys/:root", theoryHandler.KeySignature)
	v1.GET("/scales/:root", theoryHandler.Scale)
	v1.POST("/chords", theoryHandler.Chords)
	v1.GET("/circle/:key", theoryHandler.Circle)
	v1.GET("/scale-library/:root", theoryHandler.ScaleLibrary)
	v1.GET("/chord-scales/:symbol", theoryHandler.ChordScales)

	progressionHandler := NewProgressionHandler(engine, progressions, nil)
	v1.GET("/progressions", progressionHandler.List)
	v1.GET("/progressions/:id", progressionHandler.Get)
	v1.GET("/progressions/:id/analysis", progressionHandler.Analysis)
	v1.POST("/progressions/analyze", progressionHandler.AnalyzeSymbols)
	v1.GET("/coltrane/:key", progressionHandler.Coltrane)
	v1.GET("/reharm/:root", progressionHandler.Reharm)

	voicingHandler := NewVoicingHandler(engine, defaults, nil)
	v1.POST("/voicings", voicingHandler.Voicing)
	v1.POST("/voice-leading", voicingHandler.VoiceLeading)

	playbackHandler := NewPlaybackHandler(progressions, defaults, nil)
	v1.POST("/playback", playbackHandler.Playback)
	v1.POST("/midi", playbackHandler.MIDI)
	return router
}

func perform(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	w := perform(t, setupTestRouter(), "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status       string `json:"status"`
		Progressions struct {
			Templates int `json:"templates"`
		} `json:"progressions"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 11, resp.Progressions.Templates)
}

func TestGetMetrics(t *testing.T) {
	w := perform(t, setupTestRouter(), "GET", "/api/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp MetricsResponse
	decode(t, w, &resp)
	assert.Equal(t, "test", resp.Version)
	assert.Contains(t, resp.API, "voicings")
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5.00s", formatUptime(5e9))
	assert.Equal(t, "2m3.00s", formatUptime(123e9))
	assert.Equal(t, "1h1m1.00s", formatUptime(3661e9))
}

func TestKeySignatureEndpoint(t *testing.T) {
	w := perform(t, setupTestRouter(), "GET", "/api/v1/keys/G", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Mode         string              `json:"mode"`
		KeySignature theory.KeySignature `json:"keySignature"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Major", resp.Mode)
	assert.Equal(t, 1, resp.KeySignature.Count)
	assert.Equal(t, []string{"F#"}, resp.KeySignature.Accidentals)
}

func TestScaleEndpoint(t *testing.T) {
	router := setupTestRouter()
	w := perform(t, router, "GET", "/api/v1/scales/A?mode=Natural%20Minor", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Scale    []theory.ScaleDegree `json:"scale"`
		Playback []string             `json:"playback"`
	}
	decode(t, w, &resp)
	notes := make([]string, len(resp.Scale))
	for i, d := range resp.Scale {
		notes[i] = d.Note
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, notes)
	assert.Len(t, resp.Playback, 7)

	w = perform(t, router, "GET", "/api/v1/scales/C?blue=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChordsEndpoint(t *testing.T) {
	router := setupTestRouter()
	w := perform(t, router, "POST", "/api/v1/chords", gin.H{"root": "C"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Chords []struct {
			Name     string                `json:"name"`
			Analysis string                `json:"analysis"`
			Keyboard []models.KeyHighlight `json:"keyboard"`
		} `json:"chords"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Chords, 7)
	assert.Equal(t, "Cmaj7", resp.Chords[0].Name)
	assert.Equal(t, "G7 (V)", resp.Chords[4].Analysis)
	assert.NotEmpty(t, resp.Chords[0].Keyboard)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing root", gin.H{"mode": "Major"}},
		{"unknown preset", gin.H{"root": "C", "preset": "bebop"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(t, router, "POST", "/api/v1/chords", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCircleEndpoint(t *testing.T) {
	router := setupTestRouter()
	w := perform(t, router, "GET", "/api/v1/circle/C?to=G", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, router, "GET", "/api/v1/circle/H", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScaleLibraryEndpoint(t *testing.T) {
	router := setupTestRouter()
	w := perform(t, router, "GET", "/api/v1/scale-library/C", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Scales []string `json:"scales"`
	}
	decode(t, w, &list)
	assert.Equal(t, theory.ScaleNames(), list.Scales)

	w = perform(t, router, "GET", "/api/v1/scale-library/C?name=nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgressionEndpoints(t *testing.T) {
	router := setupTestRouter()

	w := perform(t, router, "GET", "/api/v1/progressions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Templates []progression.Template `json:"templates"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Templates, 11)

	w = perform(t, router, "GET", "/api/v1/progressions/jazz-251?root=F", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var get struct {
		Mode   string         `json:"mode"`
		Chords []theory.Chord `json:"chords"`
	}
	decode(t, w, &get)
	assert.Equal(t, "Major", get.Mode)
	require.Len(t, get.Chords, 3)
	assert.Equal(t, "Gm7", get.Chords[0].Name)
	assert.Equal(t, "Fmaj7", get.Chords[2].Name)

	w = perform(t, router, "GET", "/api/v1/progressions/jazz-251/analysis", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var analysis struct {
		Analysis []progression.ChordAnalysis `json:"analysis"`
	}
	decode(t, w, &analysis)
	require.Len(t, analysis.Analysis, 3)
	assert.Equal(t, "ii of C", analysis.Analysis[0].Role)

	w = perform(t, router, "GET", "/api/v1/progressions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = perform(t, router, "GET", "/api/v1/progressions/nope/analysis", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyzeSymbolsEndpoint(t *testing.T) {
	router := setupTestRouter()
	w := perform(t, router, "POST", "/api/v1/progressions/analyze", gin.H{"chords": []string{"Dm7", "G7", "Cmaj7"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analysis []progression.ChordAnalysis `json:"analysis"`
	}
	decode(t, w, &resp)
	assert.Equal(t, progression.AnalyzeProgression([]string{"Dm7", "G7", "Cmaj7"}), resp.Analysis)

	w = perform(t, router, "POST", "/api/v1/progressions/analyze", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestColtraneEndpoint(t *testing.T) {
	router := setupTestRouter()
	w := perform(t, router, "GET", "/api/v1/coltrane/B", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Chords []theory.Chord `json:"chords"`
	}
	decode(t, w, &resp)
	assert.Len(t, resp.Chords, 6)

	w = perform(t, router, "GET", "/api/v1/coltrane/H", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReharmEndpoint(t *testing.T) {
	w := perform(t, setupTestRouter(), "GET", "/api/v1/reharm/C", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Options          []ReharmOption          `json:"options"`
		ModalInterchange []progression.Borrowing `json:"modalInterchange"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Options, 7)

	dominant := resp.Options[4]
	assert.Equal(t, "G7", dominant.Chord)
	require.NotNil(t, dominant.TritoneSubstitute)
	assert.Equal(t, theory.ChordSymbol{Root: "Db", Quality: "7"}, *dominant.TritoneSubstitute)
	require.NotNil(t, dominant.RelatedII)
	assert.Equal(t, progression.RelatedII("G"), *dominant.RelatedII)

	assert.Nil(t, resp.Options[0].TritoneSubstitute)
	assert.Equal(t, progression.ModalInterchangeChords("C"), resp.ModalInterchange)
}

func TestVoicingEndpoint(t *testing.T) {
	router := setupTestRouter()

	w := perform(t, router, "POST", "/api/v1/voicings", gin.H{"root": "C", "quality": "maj7", "type": "drop2"})
	require.Equal(t, http.StatusOK, w.Code)
	var one VoicingResponse
	decode(t, w, &one)
	assert.Equal(t, "drop2", one.Type)
	assert.Equal(t, []string{"G3", "C4", "E4", "B4"}, one.Notes)
	assert.Equal(t, []int{55, 60, 64, 71}, one.Pitches)
	assert.Equal(t, 16, one.Stats.Span)

	w = perform(t, router, "POST", "/api/v1/voicings", gin.H{"root": "C"})
	require.Equal(t, http.StatusOK, w.Code)
	var all struct {
		Voicings voicing.Set   `json:"voicings"`
		TwoHand  voicing.Hands `json:"twoHand"`
	}
	decode(t, w, &all)
	assert.Equal(t, voicing.All("C", "maj7"), all.Voicings)
	assert.Equal(t, voicing.TwoHand("C", "maj7", 4), all.TwoHand)

	w = perform(t, router, "POST", "/api/v1/voicings", gin.H{"root": "C", "quality": "7", "triadRoot": "D"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &one)
	assert.Equal(t, "upperStructure", one.Type)
	assert.Equal(t, voicing.UpperStructure("C", "D", false, 4), one.Voicing)

	w = perform(t, router, "POST", "/api/v1/voicings", gin.H{"root": "C", "type": "cluster"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoicingEndpointEnforcesLimits(t *testing.T) {
	router := setupTestRouter()
	low := 1

	w := perform(t, router, "POST", "/api/v1/voicings", gin.H{"root": "C", "type": "shell", "octave": low})
	require.Equal(t, http.StatusOK, w.Code)
	var resp VoicingResponse
	decode(t, w, &resp)
	assert.Equal(t, voicing.EnforceIntervalLimits(voicing.Shell("C", "maj7", 1)), resp.Voicing)

	w = perform(t, router, "POST", "/api/v1/voicings", gin.H{"root": "C", "type": "shell", "octave": low, "enforceLimits": false})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, voicing.Shell("C", "maj7", 1), resp.Voicing)
}

func TestVoiceLeadingEndpoint(t *testing.T) {
	router := setupTestRouter()
	chords := []voicing.ChordRef{{Root: "D", Quality: "m7"}, {Root: "G", Quality: "7"}, {Root: "C", Quality: "maj7"}}

	w := perform(t, router, "POST", "/api/v1/voice-leading", gin.H{"chords": chords})
	require.Equal(t, http.StatusOK, w.Code)
	var seq struct {
		Voicings []struct {
			Voicing voicing.Voicing `json:"voicing"`
		} `json:"voicings"`
		TotalMovement int `json:"totalMovement"`
	}
	decode(t, w, &seq)
	want, err := voicing.Sequence(chords, voicing.KindRootlessA)
	require.NoError(t, err)
	require.Len(t, seq.Voicings, 3)
	for i := range want {
		assert.Equal(t, want[i], seq.Voicings[i].Voicing)
	}
	assert.Equal(t, voicing.Movement(want[0], want[1])+voicing.Movement(want[1], want[2]), seq.TotalMovement)

	prev := voicing.Drop2("C", "maj7", 4)
	w = perform(t, router, "POST", "/api/v1/voice-leading", gin.H{"previous": prev, "target": voicing.ChordRef{Root: "G", Quality: "7"}})
	require.Equal(t, http.StatusOK, w.Code)
	var step struct {
		Voicing  voicing.Voicing `json:"voicing"`
		Movement int             `json:"movement"`
	}
	decode(t, w, &step)
	assert.Equal(t, voicing.Drop2("G", "7", 4), step.Voicing)
	assert.Equal(t, 27, step.Movement)

	w = perform(t, router, "POST", "/api/v1/voice-leading", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = perform(t, router, "POST", "/api/v1/voice-leading", gin.H{"chords": chords, "first": "cluster"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaybackEndpoint(t *testing.T) {
	router := setupTestRouter()

	w := perform(t, router, "POST", "/api/v1/playback", gin.H{"mode": "scale", "notes": []string{"A", "B", "C"}})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Events []models.NoteEvent `json:"events"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Events, 3)
	assert.Equal(t, 69, resp.Events[0].MidiNoteNumber)
	assert.Equal(t, 71, resp.Events[1].MidiNoteNumber)
	assert.Equal(t, 72, resp.Events[2].MidiNoteNumber)

	w = perform(t, router, "POST", "/api/v1/playback", gin.H{"notes": []interface{}{"C4", gin.H{"note": "E", "graceNote": "Eb"}}})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Len(t, resp.Events, 3)

	tests := []struct {
		name string
		body gin.H
	}{
		{"unknown mode", gin.H{"mode": "arpeggio", "notes": []string{"C"}}},
		{"bad note", gin.H{"notes": []string{"X9"}}},
		{"missing notes", gin.H{"mode": "chord"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(t, router, "POST", "/api/v1/playback", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestMIDIEndpoint(t *testing.T) {
	router := setupTestRouter()

	w := perform(t, router, "POST", "/api/v1/midi", gin.H{"chords": []string{"Dm7", "G7", "Cmaj7"}, "tempo": 96})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/midi", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Export-ID"))
	assert.Equal(t, "MThd", w.Body.String()[:4])

	w = perform(t, router, "POST", "/api/v1/midi?format=json", gin.H{
		"progression": gin.H{"id": "jazz-251", "root": "F"},
		"options":     gin.H{"rhythm": "whole", "beatsPerChord": 2},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var rendering models.Rendering
	decode(t, w, &rendering)
	require.Len(t, rendering.Chords, 3)
	assert.Equal(t, "Gm7", rendering.Chords[0].ChordSymbol)
	assert.Equal(t, 4.0, rendering.Chords[2].StartBeats)
	assert.NotEmpty(t, rendering.Notes)

	w = perform(t, router, "POST", "/api/v1/midi?format=json", gin.H{
		"chords":  []string{"C"},
		"options": gin.H{"beatsPerChord": 65},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	tests := []struct {
		name string
		body gin.H
		code int
	}{
		{"no chords", gin.H{}, http.StatusBadRequest},
		{"unknown template", gin.H{"progression": gin.H{"id": "nope"}}, http.StatusNotFound},
		{"unknown rhythm", gin.H{"chords": []string{"C"}, "options": gin.H{"rhythm": "polka"}}, http.StatusBadRequest},
		{"unknown voicing", gin.H{"chords": []string{"C"}, "voicing": "cluster"}, http.StatusBadRequest},
		{"beats per chord too long", gin.H{"chords": []string{"C", "F"}, "options": gin.H{"beatsPerChord": 1e7}}, http.StatusBadRequest},
		{"tempo too slow", gin.H{"chords": []string{"C"}, "tempo": 0.001}, http.StatusBadRequest},
		{"tempo too fast", gin.H{"chords": []string{"C"}, "tempo": 1000}, http.StatusBadRequest},
		{"negative tempo", gin.H{"chords": []string{"C"}, "tempo": -60}, http.StatusBadRequest},
		{"slowest tempo", gin.H{"chords": []string{"C"}, "tempo": 20}, http.StatusOK},
		{"longest chords", gin.H{"chords": []string{"C", "F"}, "options": gin.H{"beatsPerChord": 64}}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(t, router, "POST", "/api/v1/midi", tt.body)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
