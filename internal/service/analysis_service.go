package service

import (
	"context"
	"time"

	"ikigai-interview-be/internal/config"
	"ikigai-interview-be/internal/constant"
	"ikigai-interview-be/internal/dto"
	"ikigai-interview-be/internal/entity"
	"ikigai-interview-be/internal/pkg/apperror"
	"ikigai-interview-be/internal/pkg/logger"
	"ikigai-interview-be/internal/repository/contract"
	"ikigai-interview-be/pkg/rubric"
	"ikigai-interview-be/pkg/scoring"
)

// IAnalysisService runs the scoring pipeline over a session, either as a
// single monolithic batch or incrementally one message at a time.
type IAnalysisService interface {
	Analyze(ctx context.Context, sessionID string) (*scoring.AnalysisResult, error)
	AnalyzeMessage(ctx context.Context, sessionID string, messageIndex int) (*dto.AnalyzeMessageResponse, error)
	Finalize(ctx context.Context, sessionID string) (*scoring.AnalysisResult, error)
}

type analysisService struct {
	sessionRepo contract.ISessionRepository
	scorer      scoring.CategoryScorer
	cfg         config.AnalysisConfig
	logger      logger.ILogger
}

func NewAnalysisService(
	sessionRepo contract.ISessionRepository,
	scorer scoring.CategoryScorer,
	cfg config.AnalysisConfig,
	sysLogger logger.ILogger,
) IAnalysisService {
	return &analysisService{
		sessionRepo: sessionRepo,
		scorer:      scorer,
		cfg:         cfg,
		logger:      sysLogger,
	}
}

// Analyze runs every (message, category) unit in one batch, racing the
// configured wall-clock bound. On expiry the in-flight calls are
// abandoned and a timeout error is surfaced so the client can fall back
// to the incremental path.
func (s *analysisService) Analyze(ctx context.Context, sessionID string) (*scoring.AnalysisResult, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, apperror.New(apperror.KindNotFound, "session not found").
			WithDetail("session_id", sessionID)
	}

	userMessages := session.UserMessages()
	tasks := make([]scoring.Task, 0, len(userMessages)*len(rubric.Categories()))
	contents := make(map[int]string, len(userMessages))
	for idx, msg := range userMessages {
		contents[idx] = msg.Content
		contextText := s.contextUpTo(session, idx)
		for _, category := range rubric.Categories() {
			tasks = append(tasks, scoring.Task{
				MessageIndex:  idx,
				Category:      category,
				ContextText:   contextText,
				TargetMessage: msg.Content,
			})
		}
	}

	s.logger.Info("analysis", "starting batch analysis", map[string]interface{}{
		"session_id": sessionID,
		"messages":   len(userMessages),
		"tasks":      len(tasks),
	})

	scheduler := scoring.NewScheduler(s.scorer, s.cfg.BatchConcurrency, s.cfg.SlicePause)

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	type batchOutcome struct {
		results []scoring.TaskResult
		err     error
	}
	done := make(chan batchOutcome, 1)
	start := time.Now()
	go func() {
		results, err := scheduler.Run(runCtx, tasks)
		done <- batchOutcome{results: results, err: err}
	}()

	var results []scoring.TaskResult
	select {
	case outcome := <-done:
		if outcome.err != nil {
			if runCtx.Err() != nil {
				return nil, s.timeoutError(session, start)
			}
			return nil, outcome.err
		}
		results = outcome.results
	case <-runCtx.Done():
		return nil, s.timeoutError(session, start)
	}

	partials := scoring.GroupByMessage(results, contents)
	result := scoring.Aggregate(partials, toLLMMessages(session.ChatHistory))

	session.AnalysisResult = result
	s.sessionRepo.Save(session)

	s.logger.Info("analysis", "batch analysis finished", map[string]interface{}{
		"session_id": sessionID,
		"elapsed":    time.Since(start).String(),
	})
	return result, nil
}

// AnalyzeMessage scores one user message across all categories and commits
// the partial result, so a process-level request timeout upstream cannot
// destroy completed work. Re-submission of the same index overwrites.
func (s *analysisService) AnalyzeMessage(ctx context.Context, sessionID string, messageIndex int) (*dto.AnalyzeMessageResponse, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, apperror.New(apperror.KindNotFound, "session not found").
			WithDetail("session_id", sessionID)
	}

	userMessages := session.UserMessages()
	if messageIndex < 0 || messageIndex >= len(userMessages) {
		return nil, apperror.New(apperror.KindInvalidArgument, "message index out of range").
			WithDetail("session_id", sessionID).
			WithDetail("message_index", messageIndex).
			WithDetail("total_messages", len(userMessages))
	}

	target := userMessages[messageIndex]
	contextText := s.contextUpTo(session, messageIndex)

	tasks := make([]scoring.Task, 0, len(rubric.Categories()))
	for _, category := range rubric.Categories() {
		tasks = append(tasks, scoring.Task{
			MessageIndex:  messageIndex,
			Category:      category,
			ContextText:   contextText,
			TargetMessage: target.Content,
		})
	}

	scheduler := scoring.NewScheduler(s.scorer, s.cfg.CategoryConcurrency, s.cfg.SlicePause)
	results, err := scheduler.Run(ctx, tasks)
	if err != nil {
		return nil, err
	}

	partial := &scoring.PartialResult{
		MessageIndex:   messageIndex,
		MessageContent: target.Content,
		Judgments:      make(map[string][]scoring.JudgedItem, len(results)),
	}
	for _, r := range results {
		partial.Judgments[r.CategoryID] = r.Items
	}

	if session.PartialAnalysis == nil {
		session.PartialAnalysis = make(map[int]*scoring.PartialResult)
	}
	session.PartialAnalysis[messageIndex] = partial
	s.sessionRepo.Save(session)

	analyzed := len(session.PartialAnalysis)
	s.logger.Info("analysis", "message analyzed", map[string]interface{}{
		"session_id":     sessionID,
		"message_index":  messageIndex,
		"analyzed_count": analyzed,
		"total_messages": len(userMessages),
	})

	return &dto.AnalyzeMessageResponse{
		MessageIndex:  messageIndex,
		TotalMessages: len(userMessages),
		AnalyzedCount: analyzed,
		AllAnalyzed:   analyzed == len(userMessages),
		State:         session.AnalysisState(),
		Result:        partial,
	}, nil
}

// Finalize folds all stored partials into the final result and clears
// them. Finalization is one-way: once the partials are discarded a second
// call fails until messages are re-analyzed.
func (s *analysisService) Finalize(ctx context.Context, sessionID string) (*scoring.AnalysisResult, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, apperror.New(apperror.KindNotFound, "session not found").
			WithDetail("session_id", sessionID)
	}
	if len(session.PartialAnalysis) == 0 {
		return nil, apperror.New(apperror.KindInvalidArgument, "no partial analysis results found").
			WithDetail("session_id", sessionID)
	}

	result := scoring.Aggregate(session.PartialAnalysis, toLLMMessages(session.ChatHistory))

	session.AnalysisResult = result
	session.PartialAnalysis = nil
	s.sessionRepo.Save(session)

	s.logger.Info("analysis", "analysis finalized", map[string]interface{}{
		"session_id": sessionID,
		"state":      session.AnalysisState(),
	})
	return result, nil
}

// contextUpTo rebuilds the sub-conversation up to and including the target
// user message, excluding the bootstrap turn, as transcript text.
func (s *analysisService) contextUpTo(session *entity.InterviewSession, messageIndex int) string {
	userSeen := -1
	turns := make([]entity.ChatMessage, 0, len(session.ChatHistory))
	for _, msg := range session.ChatHistory {
		if msg.Content == constant.BootstrapUserPromptV1 {
			continue
		}
		turns = append(turns, msg)
		if msg.Role == constant.ChatRoleUser {
			userSeen++
			if userSeen == messageIndex {
				break
			}
		}
	}
	return scoring.RenderTranscript(toLLMMessages(turns))
}

func (s *analysisService) timeoutError(session *entity.InterviewSession, start time.Time) error {
	transcript := scoring.RenderTranscript(toLLMMessages(session.ChatHistory))
	return apperror.New(apperror.KindTimeout,
		"analysis exceeded its wall-clock bound; retry with the incremental per-message path").
		WithDetail("session_id", session.ID).
		WithDetail("transcript_length", len(transcript)).
		WithDetail("elapsed", time.Since(start).String())
}
