package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/harmony-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/harmony-api/internal/api/middleware"
	"github.com/Conceptual-Machines/harmony-api/internal/config"
	"github.com/Conceptual-Machines/harmony-api/internal/metrics"
	"github.com/Conceptual-Machines/harmony-api/internal/progression"
	"github.com/Conceptual-Machines/harmony-api/internal/theory"
)

func SetupRouter(cfg *config.Config, recorder *metrics.Recorder, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSAllowedOrigins))

	engine := theory.NewEngine()
	progressions := progression.NewService(engine)
	defaults := cfg.EngineDefaults()

	// Health check
	router.GET("/health", handlers.HealthCheck(progressions))

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Engine API v1 (gateway auth when configured)
	v1 := router.Group("/api/v1")
	v1.Use(apimiddleware.Auth(cfg.IsGatewayMode()))
	{
		theoryHandler := handlers.NewTheoryHandler(engine, recorder)
		v1.GET("/keys/:root", theoryHandler.KeySignature)
		v1.GET("/scales/:root", theoryHandler.Scale)
		v1.POST("/chords", theoryHandler.Chords)
		v1.GET("/circle/:key", theoryHandler.Circle)
		v1.GET("/scale-library/:root", theoryHandler.ScaleLibrary)
		v1.GET("/chord-scales/:symbol", theoryHandler.ChordScales)

		progressionHandler := handlers.NewProgressionHandler(engine, progressions, recorder)
		v1.GET("/progressions", progressionHandler.List)
		v1.GET("/progressions/:id", progressionHandler.Get)
		v1.GET("/progressions/:id/analysis", progressionHandler.Analysis)
		v1.POST("/progressions/analyze", progressionHandler.AnalyzeSymbols) // free-form chord lists
		v1.GET("/coltrane/:key", progressionHandler.Coltrane)
		v1.GET("/reharm/:root", progressionHandler.Reharm)

		voicingHandler := handlers.NewVoicingHandler(engine, defaults, recorder)
		v1.POST("/voicings", voicingHandler.Voicing)
		v1.POST("/voice-leading", voicingHandler.VoiceLeading)

		playbackHandler := handlers.NewPlaybackHandler(progressions, defaults, recorder)
		v1.POST("/playback", playbackHandler.Playback)
		v1.POST("/midi", playbackHandler.MIDI)
	}

	return router
}
