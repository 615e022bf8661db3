package analytics

import "time"

// Counter names one tracked count
type Counter string

const (
	CounterTotal        Counter = "total"
	CounterCompleted    Counter = "completed"
	CounterFlagged      Counter = "flagged"
	CounterDocuments    Counter = "documents"
	CounterInteractions Counter = "interactions"
	CounterDurationMs   Counter = "duration_ms"
)

// Counts is a snapshot of every counter. Today is the count for the current UTC day.
type Counts struct {
	Total        int64
	Today        int64
	Completed    int64
	Flagged      int64
	Documents    int64
	Interactions int64
	DurationMs   int64
}

// Outcome describes one finished verification
type Outcome struct {
	Completed bool
	Flagged   bool
	Duration  time.Duration
}

// Baseline seeds the dashboard so a fresh deployment does not report zeros
type Baseline struct {
	Total        int64
	Today        int64
	Documents    int64
	Interactions int64
	Flagged      int64
}

// DefaultBaseline matches the figures the demo dashboard was designed around
func DefaultBaseline() Baseline {
	return Baseline{Total: 1247, Today: 156, Documents: 1156, Interactions: 2847, Flagged: 23}
}

// Static module figures
const (
	smartVisionAccuracy      = 98.7
	smartVisionAvgTime       = 2.1
	conversationSatisfaction = 94.3
	conversationResolution   = 89.2
	trustGraphAccuracy       = 96.1
	trustGraphFalsePositives = 1.2
)

// Verifications summarizes verification volume
type Verifications struct {
	Total          int64   `json:"total"`
	Today          int64   `json:"today"`
	CompletionRate float64 `json:"completionRate"`
	AverageTime    float64 `json:"averageTime"`
}

// SmartVision summarizes document and face processing
type SmartVision struct {
	Accuracy  float64 `json:"accuracy"`
	Processed int64   `json:"processed"`
	AvgTime   float64 `json:"avgTime"`
}

// ConversationalAI summarizes the assistant
type ConversationalAI struct {
	Satisfaction float64 `json:"satisfaction"`
	Interactions int64   `json:"interactions"`
	Resolution   float64 `json:"resolution"`
}

// TrustGraph summarizes trust scoring
type TrustGraph struct {
	Accuracy       float64 `json:"accuracy"`
	Flagged        int64   `json:"flagged"`
	FalsePositives float64 `json:"falsePositives"`
}

// Modules groups the per-module figures
type Modules struct {
	SmartVision      SmartVision      `json:"smartVision"`
	ConversationalAI ConversationalAI `json:"conversationalAI"`
	TrustGraph       TrustGraph       `json:"trustGraph"`
}

// Dashboard is the payload of GET /api/analytics
type Dashboard struct {
	Verifications Verifications `json:"verifications"`
	AIModules     Modules       `json:"aiModules"`
	Live          bool          `json:"live"`
}
