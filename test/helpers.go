package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/pulseboard/internal/core"
)

// NewStreamServer serves frames as one newline-delimited JSON response,
// flushing after every line, then holds the connection open until the
// client goes away. Mirrors how the kiosk backend streams vitals.
func NewStreamServer(t *testing.T, frames []core.VitalsFrame) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Error("response writer does not support flushing")
			return
		}

		enc := json.NewEncoder(w)
		for _, frame := range frames {
			if err := enc.Encode(frame); err != nil {
				return
			}
			flusher.Flush()
		}
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)
	return server
}

// AdviceFrame wraps advisory text in a minimal vitals frame.
func AdviceFrame(advice string) core.VitalsFrame {
	return core.VitalsFrame{
		Frame:        "ZnJhbWU=",
		FaceDetected: true,
		Diagnosis: &core.Diagnosis{
			HeartRate:    72,
			StressLevel:  0.3,
			FatigueRisk:  "low",
			Confidence:   0.9,
			HealthStatus: "healthy",
			AIAdvice:     advice,
		},
	}
}
