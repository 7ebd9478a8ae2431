package dto

import (
	"time"

	"ikigai-interview-be/pkg/scoring"
)

type StartInterviewResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	IsActive  bool   `json:"is_active"`
}

type SendMessageRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type CostTrackerDTO struct {
	TotalInputTokens  int `json:"total_input_tokens"`
	TotalOutputTokens int `json:"total_output_tokens"`
}

type SendMessageResponse struct {
	Message   string         `json:"message"`
	IsActive  bool           `json:"is_active"`
	IsEndCode bool           `json:"is_end_code"`
	Cost      CostTrackerDTO `json:"cost"`
}

type EndInterviewRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type EndInterviewResponse struct {
	Message  string `json:"message"`
	IsActive bool   `json:"is_active"`
}

type AnalyzeRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type AnalyzeMessageRequest struct {
	SessionID    string `json:"session_id" validate:"required"`
	MessageIndex *int   `json:"message_index" validate:"required"`
}

type AnalyzeMessageResponse struct {
	MessageIndex  int                    `json:"message_index"`
	TotalMessages int                    `json:"total_messages"`
	AnalyzedCount int                    `json:"analyzed_count"`
	AllAnalyzed   bool                   `json:"all_analyzed"`
	State         string                 `json:"state"`
	Result        *scoring.PartialResult `json:"result"`
}

type FinalizeAnalysisRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type ChatMessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TranscriptResponse struct {
	Transcript  string           `json:"transcript"`
	ChatHistory []ChatMessageDTO `json:"chat_history"`
}

type SessionHistoryResponse struct {
	SessionID    string    `json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
	IsAnalyzed   bool      `json:"is_analyzed"`
}
