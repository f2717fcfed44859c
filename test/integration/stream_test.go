//go:build integration

package integration

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/pulseboard/internal/config"
	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/service/monitor"
	"github.com/sandevgo/pulseboard/internal/service/session"
	"github.com/sandevgo/pulseboard/internal/transport/stream"
	"github.com/sandevgo/pulseboard/test"
)

// End to end over a live HTTP stream: frames in, export artifact out.
// Placeholder advice and byte-identical repeats must not reach the
// history.
func TestStreamToExport(t *testing.T) {
	frames := []core.VitalsFrame{
		test.AdviceFrame("I recommend taking a short walk outside every morning."),
		test.AdviceFrame("Analyzing your vitals now, please wait."),
		test.AdviceFrame("I suggest drinking more water during the afternoon."),
		test.AdviceFrame("I suggest drinking more water during the afternoon."),
	}
	server := test.NewStreamServer(t, frames)

	store := session.NewStore()
	defer store.Close()

	client := stream.NewClient(&config.StreamConfig{URL: server.URL, ConnectTimeout: time.Second})
	mon := monitor.NewMonitor(client, store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- mon.Start(ctx) }()

	waitFor(t, func() bool {
		stats := mon.Stats()
		return stats.Frames == int64(len(frames)) && store.Count() == 2
	})

	stats := mon.Stats()
	if !stats.Connected {
		t.Error("monitor should report the stream as connected")
	}
	if stats.AdviceSeen != 4 {
		t.Errorf("AdviceSeen = %d, want 4", stats.AdviceSeen)
	}
	if stats.FacesDetected != 4 {
		t.Errorf("FacesDetected = %d, want 4", stats.FacesDetected)
	}

	artifact, ok := store.Export()
	if !ok {
		t.Fatal("export should produce an artifact")
	}
	for _, want := range []string{
		"[Exercise] Taking a short walk outside every morning",
		"[Nutrition] Drinking more water during the afternoon",
	} {
		if !strings.Contains(artifact, want) {
			t.Errorf("artifact missing %q:\n%s", want, artifact)
		}
	}
	if strings.Contains(artifact, "Analyzing") {
		t.Errorf("placeholder advice leaked into the artifact:\n%s", artifact)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("monitor stopped with error: %v", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
