package statusapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsee/linelauncher/internal/beat"
	"github.com/jsee/linelauncher/internal/clock"
	"github.com/jsee/linelauncher/internal/launcher"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthCheck(t *testing.T) {
	s := New(launcher.NewPlayingState())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGetStatusReflectsSnapshot(t *testing.T) {
	state := launcher.NewPlayingState()
	state.PublishForTest(launcher.Snapshot{
		NextMeasureBeat: beat.NewMeasureBeat(3, 4),
		CurrentChord:    "Dm7",
		ChordIndex:      2,
		DurationRatio:   0.75,
		IntervalState:   clock.Full,
		PlannedCount:    6,
	})
	s := New(state)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got statusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.CurrentChord != "Dm7" || got.ChordIndex != 2 || got.PlannedCount != 6 {
		t.Fatalf("unexpected status response: %+v", got)
	}
	if got.IntervalState != "full" {
		t.Fatalf("interval_state = %q, want %q", got.IntervalState, "full")
	}
}
