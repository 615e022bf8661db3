package chat

import "time"

// Intent is the classified purpose of a message
type Intent string

const (
	IntentSecurity Intent = "question_security"
	IntentProcess  Intent = "question_process"
	IntentTime     Intent = "question_time"
	IntentHelp     Intent = "help"
	IntentConcern  Intent = "concern"
	IntentGeneral  Intent = "general"
)

// baseConfidence is the score an intent must beat to replace IntentGeneral
const baseConfidence = 0.3

// Entities are the key terms found in a message
type Entities struct {
	DocumentType string `json:"documentType,omitempty"`
	Concern      string `json:"concern,omitempty"`
}

// Reply is the assistant's answer to one message
type Reply struct {
	Intent     Intent    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Entities   Entities  `json:"entities"`
	Response   string    `json:"response"`
	Timestamp  time.Time `json:"timestamp"`
}

// MessageRequest is the body of POST /api/chat
type MessageRequest struct {
	Message string                 `json:"message" binding:"required" validate:"min=1,max=1000"`
	Context map[string]interface{} `json:"context,omitempty"`
}
