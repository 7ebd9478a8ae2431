package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ikigai-interview-be/internal/constant"
	"ikigai-interview-be/internal/dto"
	"ikigai-interview-be/internal/entity"
	"ikigai-interview-be/internal/pkg/apperror"
	"ikigai-interview-be/internal/repository/memory"
	"ikigai-interview-be/pkg/llm"
	"ikigai-interview-be/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type scriptedProvider struct {
	replies []string
	errs    []error
	calls   int
	lastOpt llm.Options
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Reply, error) {
	for _, opt := range options {
		opt(&p.lastOpt)
	}
	idx := p.calls
	p.calls++
	if idx < len(p.errs) && p.errs[idx] != nil {
		return nil, p.errs[idx]
	}
	text := p.replies[len(p.replies)-1]
	if idx < len(p.replies) {
		text = p.replies[idx]
	}
	return &llm.Reply{Text: text, Usage: llm.Usage{InputTokens: 100, OutputTokens: 50}}, nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (*llm.Reply, error) {
	return p.Chat(ctx, nil, options...)
}

func newTestInterviewService(provider llm.Provider) (IInterviewService, *memory.SessionRepository) {
	repo := memory.NewSessionRepository()
	policy := retry.Policy{MaxAttempts: 3, InitialDelay: time.Millisecond}
	return NewInterviewService(repo, provider, policy, 1024, noopLogger{}), repo
}

func TestStartCreatesSessionWithOpeningMessage(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"こんにちは。最近、充実していると感じた瞬間はありますか？"}}
	svc, repo := newTestInterviewService(provider)

	res, err := svc.Start(context.Background())
	require.NoError(t, err)

	assert.Contains(t, res.SessionID, "session_")
	assert.True(t, res.IsActive)
	assert.Equal(t, "こんにちは。最近、充実していると感じた瞬間はありますか？", res.Message)

	session, found := repo.Get(res.SessionID)
	require.True(t, found)
	require.Len(t, session.ChatHistory, 2)
	assert.Equal(t, constant.BootstrapUserPromptV1, session.ChatHistory[0].Content)
	assert.Equal(t, constant.ChatRoleAssistant, session.ChatHistory[1].Role)

	// The persona system prompt rides on the provider call, never the history.
	assert.Equal(t, constant.InterviewerSystemPromptV1, provider.lastOpt.SystemPrompt)
}

func TestSendMessageAppendsTurnsAndTracksCost(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"開始の挨拶", "それは素晴らしいですね。詳しく聞かせてください。"}}
	svc, repo := newTestInterviewService(provider)

	started, err := svc.Start(context.Background())
	require.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionID: started.SessionID,
		Message:   "実験がうまくいったときです。",
	})
	require.NoError(t, err)

	assert.True(t, res.IsActive)
	assert.False(t, res.IsEndCode)
	assert.Equal(t, 200, res.Cost.TotalInputTokens)
	assert.Equal(t, 100, res.Cost.TotalOutputTokens)

	session, _ := repo.Get(started.SessionID)
	require.Len(t, session.ChatHistory, 4)
	assert.Equal(t, "実験がうまくいったときです。", session.ChatHistory[2].Content)
}

func TestSendMessageSentinelDeactivatesSession(t *testing.T) {
	for _, code := range constant.SentinelCodes {
		t.Run(code, func(t *testing.T) {
			provider := &scriptedProvider{replies: []string{"挨拶", "  " + code + "\n"}}
			svc, repo := newTestInterviewService(provider)

			started, err := svc.Start(context.Background())
			require.NoError(t, err)

			res, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{
				SessionID: started.SessionID,
				Message:   "もう終わりにします。",
			})
			require.NoError(t, err)

			assert.True(t, res.IsEndCode)
			assert.False(t, res.IsActive)

			// The sentinel reply itself is never stored.
			session, _ := repo.Get(started.SessionID)
			for _, msg := range session.ChatHistory {
				assert.NotEqual(t, code, msg.Content)
			}
			assert.False(t, session.IsActive)
		})
	}
}

func TestSendMessageSentinelMentionedMidSentenceIsNotDetected(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"挨拶", "コード x7y8 についてお話しましょう。"}}
	svc, _ := newTestInterviewService(provider)

	started, err := svc.Start(context.Background())
	require.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionID: started.SessionID,
		Message:   "質問です。",
	})
	require.NoError(t, err)
	assert.False(t, res.IsEndCode)
	assert.True(t, res.IsActive)
}

func TestSendMessageUnknownSession(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"挨拶"}}
	svc, _ := newTestInterviewService(provider)

	_, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionID: "session_missing",
		Message:   "hi",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestSendMessageInactiveSession(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"挨拶"}}
	svc, _ := newTestInterviewService(provider)

	started, err := svc.Start(context.Background())
	require.NoError(t, err)
	_, err = svc.End(context.Background(), started.SessionID)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionID: started.SessionID,
		Message:   "まだ話せますか？",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInactiveSession, apperror.KindOf(err))
}

func TestConverseRetriesRateLimit(t *testing.T) {
	provider := &scriptedProvider{
		errs:    []error{errors.New("429 too many requests"), nil},
		replies: []string{"", "挨拶"},
	}
	svc, _ := newTestInterviewService(provider)

	res, err := svc.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "挨拶", res.Message)
	assert.Equal(t, 2, provider.calls)
}

func TestConverseSurfacesPersistentRateLimitAsTransient(t *testing.T) {
	rateLimited := errors.New("429 too many requests")
	provider := &scriptedProvider{
		errs:    []error{rateLimited, rateLimited, rateLimited},
		replies: []string{""},
	}
	svc, _ := newTestInterviewService(provider)

	_, err := svc.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.KindUpstreamTransient, apperror.KindOf(err))
}

func TestTranscriptExcludesBootstrap(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"最初の質問です。", "次の質問です。"}}
	svc, _ := newTestInterviewService(provider)

	started, err := svc.Start(context.Background())
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionID: started.SessionID,
		Message:   "私の回答です。",
	})
	require.NoError(t, err)

	res, err := svc.Transcript(context.Background(), started.SessionID)
	require.NoError(t, err)

	assert.NotContains(t, res.Transcript, constant.BootstrapUserPromptV1)
	assert.Contains(t, res.Transcript, constant.TranscriptLabelAssistant+": 最初の質問です。")
	assert.Contains(t, res.Transcript, constant.TranscriptLabelUser+": 私の回答です。")
	assert.Len(t, res.ChatHistory, 4)
}

func TestHistorySortsNewestFirst(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"挨拶"}}
	svc, repo := newTestInterviewService(provider)

	old := &entity.InterviewSession{ID: "session_old", CreatedAt: time.Now().Add(-time.Hour)}
	recent := &entity.InterviewSession{ID: "session_recent", CreatedAt: time.Now()}
	repo.Save(old)
	repo.Save(recent)

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "session_recent", history[0].SessionID)
	assert.Equal(t, "session_old", history[1].SessionID)
}

func TestResultRequiresFinalizedAnalysis(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"挨拶"}}
	svc, _ := newTestInterviewService(provider)

	started, err := svc.Start(context.Background())
	require.NoError(t, err)

	_, err = svc.Result(context.Background(), started.SessionID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
