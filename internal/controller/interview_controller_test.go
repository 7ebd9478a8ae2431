package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ikigai-interview-be/internal/dto"
	"ikigai-interview-be/internal/pkg/apperror"
	"ikigai-interview-be/internal/pkg/serverutils"
	"ikigai-interview-be/pkg/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInterviewService struct{}

func (fakeInterviewService) Start(ctx context.Context) (*dto.StartInterviewResponse, error) {
	return &dto.StartInterviewResponse{SessionID: "session_1", Message: "こんにちは", IsActive: true}, nil
}

func (fakeInterviewService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if request.SessionID != "session_1" {
		return nil, apperror.New(apperror.KindNotFound, "session not found")
	}
	return &dto.SendMessageResponse{Message: "返信", IsActive: true}, nil
}

func (fakeInterviewService) End(ctx context.Context, sessionID string) (*dto.EndInterviewResponse, error) {
	return &dto.EndInterviewResponse{Message: "Interview ended"}, nil
}

func (fakeInterviewService) Transcript(ctx context.Context, sessionID string) (*dto.TranscriptResponse, error) {
	return &dto.TranscriptResponse{Transcript: "transcript"}, nil
}

func (fakeInterviewService) History(ctx context.Context) ([]*dto.SessionHistoryResponse, error) {
	return nil, nil
}

func (fakeInterviewService) Result(ctx context.Context, sessionID string) (*scoring.AnalysisResult, error) {
	return nil, apperror.New(apperror.KindNotFound, "session has not been analyzed yet")
}

type fakeAnalysisService struct{}

func (fakeAnalysisService) Analyze(ctx context.Context, sessionID string) (*scoring.AnalysisResult, error) {
	return nil, apperror.New(apperror.KindTimeout, "analysis exceeded its wall-clock bound")
}

func (fakeAnalysisService) AnalyzeMessage(ctx context.Context, sessionID string, messageIndex int) (*dto.AnalyzeMessageResponse, error) {
	return &dto.AnalyzeMessageResponse{MessageIndex: messageIndex, TotalMessages: 1, AnalyzedCount: 1, AllAnalyzed: true}, nil
}

func (fakeAnalysisService) Finalize(ctx context.Context, sessionID string) (*scoring.AnalysisResult, error) {
	return &scoring.AnalysisResult{}, nil
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	ctrl := NewInterviewController(fakeInterviewService{}, fakeAnalysisService{})
	ctrl.RegisterRoutes(app.Group("/api"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func TestStartEndpoint(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/interview/v1/start", map[string]string{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "session_1", data["session_id"])
}

func TestSendMessageValidation(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/interview/v1/message", map[string]string{
		"session_id": "session_1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, string(apperror.KindInvalidArgument), body["code"])
}

func TestSendMessageNotFoundMapsTo404(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/interview/v1/message", map[string]string{
		"session_id": "session_missing",
		"message":    "hi",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(apperror.KindNotFound), body["code"])
}

func TestAnalyzeTimeoutMapsTo504(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/interview/v1/analyze", map[string]string{
		"session_id": "session_1",
	})
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, string(apperror.KindTimeout), body["code"])
}
