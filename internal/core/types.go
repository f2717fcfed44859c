package core

import "time"

const (
	PulseName      = "Pulseboard"
	PulseUserAgent = "Pulseboard-Monitor/0.1"
	PulseVersion   = "0.1.0"
)

// Recommendation is one discrete, categorized piece of advice extracted
// from the advisory stream. Entries are immutable once stored except for
// IsNew, which the history store clears on a delay.
type Recommendation struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Category   string `json:"category"`
	Timestamp  string `json:"timestamp"`
	SourceText string `json:"source_text"`
	IsNew      bool   `json:"is_new"`
}

// Diagnosis carries the per-frame analysis fields pushed by the kiosk
// backend. Only AIAdvice feeds the recommendation pipeline; the rest is
// surfaced on the status header untouched.
type Diagnosis struct {
	HeartRate    float64  `json:"heart_rate"`
	StressLevel  float64  `json:"stress_level"`
	FatigueRisk  string   `json:"fatigue_risk"`
	Confidence   float64  `json:"confidence"`
	HealthStatus string   `json:"health_status"`
	AIAdvice     string   `json:"ai_advice"`
	Alerts       []string `json:"alerts"`
}

// VitalsFrame is one message of the kiosk's live stream. Frames without
// a diagnosis (no face in view, backend warming up) are still counted.
type VitalsFrame struct {
	Frame        string     `json:"frame"`
	FaceDetected bool       `json:"face_detected"`
	Diagnosis    *Diagnosis `json:"diagnosis,omitempty"`
}

// SessionStats aggregates monitor counters for the status surfaces.
type SessionStats struct {
	StartedAt     time.Time
	Frames        int64
	FacesDetected int64
	AdviceSeen    int64
	Connected     bool
	LastDiagnosis *Diagnosis
}
