// Package statusapi exposes the running launcher's playback state over
// HTTP: a health check and a read-only status snapshot, for dashboards
// and external tooling that want more than the terminal monitor.
package statusapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jsee/linelauncher/internal/launcher"
)

// @title Line Launcher Status API
// @version 1.0
// @description Read-only status surface for a running line launcher
// @host localhost:8090
// @BasePath /api/v1

// Server serves the status API against a single launcher's state.
type Server struct {
	state *launcher.PlayingState
	r     *gin.Engine
}

// New builds a Server reading from state.
func New(state *launcher.PlayingState) *Server {
	r := gin.Default()
	r.Use(corsMiddleware())

	s := &Server{state: state, r: r}

	r.GET("/health", s.healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", s.healthCheck)
		v1.GET("/status", s.getStatus)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return s
}

// Run starts the server listening on port, blocking until it stops.
func (s *Server) Run(port int) error {
	return s.r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "linelauncher",
	})
}

// statusResponse mirrors launcher.Snapshot as JSON, with the
// clock.IntervalState rendered as its string name.
type statusResponse struct {
	NextMeasureBeat    string  `json:"next_measure_beat"`
	CurrentChord       string  `json:"current_chord"`
	ChordIndex         int     `json:"chord_index"`
	DurationRatio      float64 `json:"duration_ratio"`
	AheadOrBehindRatio float64 `json:"ahead_or_behind_ratio"`
	RandomizeRatio     float64 `json:"randomize_ratio"`
	IntervalState      string  `json:"interval_state"`
	PlannedCount       int     `json:"planned_count"`
}

// getStatus godoc
// @Summary Current playback status
// @Description Returns the current beat, chord, slider ratios, and clock state
// @Tags status
// @Produce json
// @Success 200 {object} statusResponse
// @Router /status [get]
func (s *Server) getStatus(c *gin.Context) {
	snap := s.state.Get()
	c.JSON(http.StatusOK, statusResponse{
		NextMeasureBeat:    snap.NextMeasureBeat.String(),
		CurrentChord:       snap.CurrentChord,
		ChordIndex:         snap.ChordIndex,
		DurationRatio:      snap.DurationRatio,
		AheadOrBehindRatio: snap.AheadOrBehindRatio,
		RandomizeRatio:     snap.RandomizeRatio,
		IntervalState:      snap.IntervalState.String(),
		PlannedCount:       snap.PlannedCount,
	})
}
