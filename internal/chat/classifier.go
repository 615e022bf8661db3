package chat

import "strings"

// Checked in this order; an intent must strictly beat the best so far.
var intentPatterns = []struct {
	intent   Intent
	keywords []string
}{
	{IntentSecurity, []string{"secure", "safety", "safe", "privacy", "data", "protection"}},
	{IntentProcess, []string{"how", "what", "when", "process", "step", "work"}},
	{IntentTime, []string{"long", "time", "duration", "quick", "fast"}},
	{IntentHelp, []string{"help", "support", "assist", "problem", "issue"}},
	{IntentConcern, []string{"worried", "concern", "afraid", "nervous", "doubt"}},
}

// Later terms overwrite earlier ones
var (
	documentTerms = []string{"passport", "license", "id", "document"}
	concernTerms  = []string{"privacy", "security", "time", "process"}
)

// ClassifyIntent scores each intent by the fraction of its keywords present in message
func ClassifyIntent(message string) (Intent, float64) {
	lower := strings.ToLower(message)

	best, confidence := IntentGeneral, baseConfidence
	for _, p := range intentPatterns {
		matches := 0
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		score := float64(matches) / float64(len(p.keywords))
		if score > confidence {
			best, confidence = p.intent, score
		}
	}
	return best, confidence
}

// ExtractEntities finds the document type and concern mentioned in message
func ExtractEntities(message string) Entities {
	lower := strings.ToLower(message)

	var e Entities
	for _, term := range documentTerms {
		if strings.Contains(lower, term) {
			e.DocumentType = term
		}
	}
	for _, term := range concernTerms {
		if strings.Contains(lower, term) {
			e.Concern = term
		}
	}
	return e
}
