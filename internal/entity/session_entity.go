package entity

import (
	"time"

	"ikigai-interview-be/internal/constant"
	"ikigai-interview-be/pkg/scoring"
)

// ChatMessage is one turn of the interview. The history is append-only for
// the life of a session.
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// CostTracker accumulates billed token counts across every generation call
// made on behalf of a session. Single-writer-in-practice; no locking.
type CostTracker struct {
	TotalInputTokens  int `json:"total_input_tokens"`
	TotalOutputTokens int `json:"total_output_tokens"`
}

// Analysis lifecycle states for a session.
const (
	AnalysisNotStarted        = "NOT_STARTED"
	AnalysisPartiallyAnalyzed = "PARTIALLY_ANALYZED"
	AnalysisFullyAnalyzed     = "FULLY_ANALYZED"
)

// InterviewSession is the process-memory record of one interview. It is
// never persisted across restarts.
type InterviewSession struct {
	ID              string                         `json:"id"`
	ChatHistory     []ChatMessage                  `json:"chat_history"`
	IsActive        bool                           `json:"is_active"`
	Cost            CostTracker                    `json:"cost"`
	CreatedAt       time.Time                      `json:"created_at"`
	PartialAnalysis map[int]*scoring.PartialResult `json:"-"`
	AnalysisResult  *scoring.AnalysisResult        `json:"-"`
}

// UserMessages returns the respondent's turns, excluding the bootstrap
// prompt. Message indices used by the analysis API index into this slice.
func (s *InterviewSession) UserMessages() []ChatMessage {
	messages := make([]ChatMessage, 0, len(s.ChatHistory))
	for _, msg := range s.ChatHistory {
		if msg.Role == constant.ChatRoleUser && msg.Content != constant.BootstrapUserPromptV1 {
			messages = append(messages, msg)
		}
	}
	return messages
}

// AnalysisState reports where the session sits in the one-way analysis
// lifecycle.
func (s *InterviewSession) AnalysisState() string {
	if s.AnalysisResult != nil {
		return AnalysisFullyAnalyzed
	}
	if len(s.PartialAnalysis) > 0 {
		return AnalysisPartiallyAnalyzed
	}
	return AnalysisNotStarted
}
