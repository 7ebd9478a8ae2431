package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ikigai-interview-be/internal/constant"
	"ikigai-interview-be/internal/dto"
	"ikigai-interview-be/internal/entity"
	"ikigai-interview-be/internal/pkg/apperror"
	"ikigai-interview-be/internal/pkg/logger"
	"ikigai-interview-be/internal/repository/contract"
	"ikigai-interview-be/pkg/llm"
	"ikigai-interview-be/pkg/retry"
	"ikigai-interview-be/pkg/scoring"

	"github.com/google/uuid"
)

// IInterviewService drives the conversational side of an interview:
// session lifecycle, turn-taking and read-only projections.
type IInterviewService interface {
	Start(ctx context.Context) (*dto.StartInterviewResponse, error)
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	End(ctx context.Context, sessionID string) (*dto.EndInterviewResponse, error)
	Transcript(ctx context.Context, sessionID string) (*dto.TranscriptResponse, error)
	History(ctx context.Context) ([]*dto.SessionHistoryResponse, error)
	Result(ctx context.Context, sessionID string) (*scoring.AnalysisResult, error)
}

type interviewService struct {
	sessionRepo    contract.ISessionRepository
	provider       llm.Provider
	retryPolicy    retry.Policy
	maxReplyTokens int
	logger         logger.ILogger
}

func NewInterviewService(
	sessionRepo contract.ISessionRepository,
	provider llm.Provider,
	retryPolicy retry.Policy,
	maxReplyTokens int,
	sysLogger logger.ILogger,
) IInterviewService {
	return &interviewService{
		sessionRepo:    sessionRepo,
		provider:       provider,
		retryPolicy:    retryPolicy,
		maxReplyTokens: maxReplyTokens,
		logger:         sysLogger,
	}
}

// Start creates a session, performs the bootstrap turn and returns the
// persona's opening message.
func (s *interviewService) Start(ctx context.Context) (*dto.StartInterviewResponse, error) {
	session := &entity.InterviewSession{
		ID:        mintSessionID(),
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	session.ChatHistory = append(session.ChatHistory, entity.ChatMessage{
		Role:    constant.ChatRoleUser,
		Content: constant.BootstrapUserPromptV1,
	})

	reply, err := s.converse(ctx, session)
	if err != nil {
		return nil, err
	}

	session.ChatHistory = append(session.ChatHistory, entity.ChatMessage{
		Role:    constant.ChatRoleAssistant,
		Content: reply.Text,
	})
	s.sessionRepo.Save(session)

	s.logger.Info("interview", "session started", map[string]interface{}{
		"session_id": session.ID,
	})

	return &dto.StartInterviewResponse{
		SessionID: session.ID,
		Message:   reply.Text,
		IsActive:  session.IsActive,
	}, nil
}

// SendMessage appends a respondent turn, fetches the persona's reply and
// applies sentinel detection. A sentinel reply deactivates the session and
// is excluded from stored history.
func (s *interviewService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	session, found := s.sessionRepo.Get(request.SessionID)
	if !found {
		return nil, apperror.New(apperror.KindNotFound, "session not found").
			WithDetail("session_id", request.SessionID)
	}
	if !session.IsActive {
		return nil, apperror.New(apperror.KindInactiveSession, "interview session is not active").
			WithDetail("session_id", request.SessionID)
	}

	session.ChatHistory = append(session.ChatHistory, entity.ChatMessage{
		Role:    constant.ChatRoleUser,
		Content: request.Message,
	})

	reply, err := s.converse(ctx, session)
	if err != nil {
		return nil, err
	}

	replyText := reply.Text
	isEndCode := isSentinelCode(replyText)
	if isEndCode {
		session.IsActive = false
		s.logger.Info("interview", "sentinel code received, session deactivated", map[string]interface{}{
			"session_id": session.ID,
			"code":       strings.TrimSpace(replyText),
		})
	} else {
		session.ChatHistory = append(session.ChatHistory, entity.ChatMessage{
			Role:    constant.ChatRoleAssistant,
			Content: replyText,
		})
	}
	s.sessionRepo.Save(session)

	return &dto.SendMessageResponse{
		Message:   replyText,
		IsActive:  session.IsActive,
		IsEndCode: isEndCode,
		Cost: dto.CostTrackerDTO{
			TotalInputTokens:  session.Cost.TotalInputTokens,
			TotalOutputTokens: session.Cost.TotalOutputTokens,
		},
	}, nil
}

// End forces a session inactive.
func (s *interviewService) End(ctx context.Context, sessionID string) (*dto.EndInterviewResponse, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, apperror.New(apperror.KindNotFound, "session not found").
			WithDetail("session_id", sessionID)
	}

	session.IsActive = false
	s.sessionRepo.Save(session)

	return &dto.EndInterviewResponse{
		Message:  "Interview ended",
		IsActive: false,
	}, nil
}

// Transcript renders the conversation minus the bootstrap turn.
func (s *interviewService) Transcript(ctx context.Context, sessionID string) (*dto.TranscriptResponse, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, apperror.New(apperror.KindNotFound, "session not found").
			WithDetail("session_id", sessionID)
	}

	history := make([]dto.ChatMessageDTO, 0, len(session.ChatHistory))
	for _, msg := range session.ChatHistory {
		history = append(history, dto.ChatMessageDTO{Role: msg.Role, Content: msg.Content})
	}

	return &dto.TranscriptResponse{
		Transcript:  scoring.RenderTranscript(toLLMMessages(session.ChatHistory)),
		ChatHistory: history,
	}, nil
}

// History lists all sessions newest first.
func (s *interviewService) History(ctx context.Context) ([]*dto.SessionHistoryResponse, error) {
	sessions := s.sessionRepo.All()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	history := make([]*dto.SessionHistoryResponse, 0, len(sessions))
	for _, session := range sessions {
		history = append(history, &dto.SessionHistoryResponse{
			SessionID:    session.ID,
			CreatedAt:    session.CreatedAt,
			MessageCount: countNonBootstrap(session.ChatHistory),
			IsAnalyzed:   session.AnalysisResult != nil,
		})
	}
	return history, nil
}

// Result returns the final analysis of a session, if one exists yet.
func (s *interviewService) Result(ctx context.Context, sessionID string) (*scoring.AnalysisResult, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, apperror.New(apperror.KindNotFound, "session not found").
			WithDetail("session_id", sessionID)
	}
	if session.AnalysisResult == nil {
		return nil, apperror.New(apperror.KindNotFound, "session has not been analyzed yet").
			WithDetail("session_id", sessionID)
	}
	return session.AnalysisResult, nil
}

// converse sends the whole history to the provider under the persona
// system prompt, retrying transient rate limits, and accumulates cost.
func (s *interviewService) converse(ctx context.Context, session *entity.InterviewSession) (*llm.Reply, error) {
	history := toLLMMessages(session.ChatHistory)

	reply, err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) (*llm.Reply, error) {
		return s.provider.Chat(ctx, history,
			llm.WithSystemPrompt(constant.InterviewerSystemPromptV1),
			llm.WithMaxTokens(s.maxReplyTokens),
		)
	})
	if err != nil {
		kind := apperror.KindInternal
		if retry.IsRateLimit(err) {
			kind = apperror.KindUpstreamTransient
		}
		return nil, apperror.Wrap(kind, "conversation call failed", err).
			WithDetail("session_id", session.ID)
	}

	session.Cost.TotalInputTokens += reply.Usage.InputTokens
	session.Cost.TotalOutputTokens += reply.Usage.OutputTokens
	return reply, nil
}

func toLLMMessages(history []entity.ChatMessage) []llm.Message {
	messages := make([]llm.Message, len(history))
	for i, msg := range history {
		messages[i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}
	return messages
}

func countNonBootstrap(history []entity.ChatMessage) int {
	count := 0
	for _, msg := range history {
		if msg.Content != constant.BootstrapUserPromptV1 {
			count++
		}
	}
	return count
}

func isSentinelCode(reply string) bool {
	trimmed := strings.TrimSpace(reply)
	for _, code := range constant.SentinelCodes {
		if trimmed == code {
			return true
		}
	}
	return false
}

func mintSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
