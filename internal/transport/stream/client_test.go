package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sandevgo/pulseboard/internal/config"
	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(&config.StreamConfig{URL: url, ConnectTimeout: time.Second})
}

func TestClient_Subscribe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFrames int
		wantAdvice []string
	}{
		{
			name: "decodes frames in order",
			body: `{"face_detected":true,"diagnosis":{"heart_rate":72,"ai_advice":"I recommend taking short breaks."}}` + "\n" +
				`{"face_detected":true,"diagnosis":{"heart_rate":74,"ai_advice":"You should drink more water."}}` + "\n",
			wantFrames: 2,
			wantAdvice: []string{"I recommend taking short breaks.", "You should drink more water."},
		},
		{
			name: "skips malformed lines",
			body: `{"face_detected":true}` + "\n" +
				`{not json at all` + "\n" +
				`{"face_detected":false}` + "\n",
			wantFrames: 2,
			wantAdvice: []string{"", ""},
		},
		{
			name:       "skips blank lines",
			body:       "\n\n" + `{"face_detected":true}` + "\n\n",
			wantFrames: 1,
			wantAdvice: []string{""},
		},
		{
			name:       "frame without diagnosis",
			body:       `{"frame":"aGVsbG8=","face_detected":false}` + "\n",
			wantFrames: 1,
			wantAdvice: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/x-ndjson")
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			var frames []core.VitalsFrame
			err := newTestClient(server.URL).Subscribe(context.Background(), func(f core.VitalsFrame) {
				frames = append(frames, f)
			})

			// The server closing the stream is the reconnect signal.
			require.Error(t, err)
			assert.Contains(t, err.Error(), "stream closed")

			require.Len(t, frames, tt.wantFrames)
			for i, want := range tt.wantAdvice {
				got := ""
				if frames[i].Diagnosis != nil {
					got = frames[i].Diagnosis.AIAdvice
				}
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestClient_SubscribeFlattensMarkup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"face_detected":true,"diagnosis":{"ai_advice":"<p>I recommend <b>taking short breaks</b>.</p>"}}`)
	}))
	defer server.Close()

	var frames []core.VitalsFrame
	err := newTestClient(server.URL).Subscribe(context.Background(), func(f core.VitalsFrame) {
		frames = append(frames, f)
	})

	require.Error(t, err)
	require.Len(t, frames, 1)
	require.NotNil(t, frames[0].Diagnosis)
	assert.Contains(t, frames[0].Diagnosis.AIAdvice, "I recommend")
	assert.NotContains(t, frames[0].Diagnosis.AIAdvice, "<b>")
}

func TestClient_SubscribeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Subscribe(context.Background(), func(core.VitalsFrame) {})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestClient_SubscribeStopsOnContextCancel(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"face_detected":true}`)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- newTestClient(server.URL).Subscribe(ctx, func(f core.VitalsFrame) {
			cancel()
		})
	}()

	select {
	case err := <-done:
		assert.NoError(t, err, "cancellation should end the subscription cleanly")
	case <-time.After(5 * time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}

func TestClient_SubscribeSetsUserAgent(t *testing.T) {
	var receivedUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	_ = newTestClient(server.URL).Subscribe(context.Background(), func(core.VitalsFrame) {})

	assert.Contains(t, receivedUA, "Pulseboard")
}
