package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api/interview/v1"

// Simplified DTOs for the script
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type startData struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type messageData struct {
	Message   string `json:"message"`
	IsActive  bool   `json:"is_active"`
	IsEndCode bool   `json:"is_end_code"`
}

type analyzeMessageData struct {
	MessageIndex  int    `json:"message_index"`
	TotalMessages int    `json:"total_messages"`
	AnalyzedCount int    `json:"analyzed_count"`
	AllAnalyzed   bool   `json:"all_analyzed"`
	State         string `json:"state"`
}

var (
	interviewer = color.New(color.FgCyan)
	respondent  = color.New(color.FgGreen)
	status      = color.New(color.FgYellow)
)

func main() {
	fmt.Println("=== Interview Simulation Client ===")

	start, err := postJSON[startData]("/start", map[string]string{})
	if err != nil {
		log.Fatalf("Failed to start interview: %v", err)
	}
	status.Printf("Session Created: %s\n", start.SessionID)
	interviewer.Printf("AI: %s\n", start.Message)

	answers := []string{
		"私は研究の仕事をしていて、実験がうまくいったときに生きがいを感じます。",
		"家族と過ごす時間も大切です。週末に子どもと遊ぶと元気が出ます。",
		"もう十分お話しました。ありがとうございました。",
	}

	for _, answer := range answers {
		respondent.Printf("\nUSER: %s\n", answer)

		startedAt := time.Now()
		reply, err := postJSON[messageData]("/message", map[string]string{
			"session_id": start.SessionID,
			"message":    answer,
		})
		if err != nil {
			log.Fatalf("Failed to send message: %v", err)
		}

		if reply.IsEndCode {
			status.Printf("Interview ended with code %q (%.1fs)\n", reply.Message, time.Since(startedAt).Seconds())
			break
		}
		interviewer.Printf("AI (%.1fs): %s\n", time.Since(startedAt).Seconds(), reply.Message)
	}

	if _, err := postJSON[map[string]interface{}]("/end", map[string]string{
		"session_id": start.SessionID,
	}); err != nil {
		log.Fatalf("Failed to end interview: %v", err)
	}

	// Incremental analysis loop: one message at a time so a slow upstream
	// cannot blow a single request timeout.
	status.Println("\nAnalyzing messages incrementally...")
	for index := 0; ; index++ {
		progress, err := postJSON[analyzeMessageData]("/analyze-message", map[string]interface{}{
			"session_id":    start.SessionID,
			"message_index": index,
		})
		if err != nil {
			log.Fatalf("Failed to analyze message %d: %v", index, err)
		}
		status.Printf("analyzed %d/%d (state: %s)\n", progress.AnalyzedCount, progress.TotalMessages, progress.State)
		if progress.AllAnalyzed {
			break
		}
	}

	result, err := postJSON[json.RawMessage]("/finalize-analysis", map[string]string{
		"session_id": start.SessionID,
	})
	if err != nil {
		log.Fatalf("Failed to finalize analysis: %v", err)
	}

	status.Println("\nFinal analysis:")
	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(pretty))
}

func postJSON[T any](path string, payload interface{}) (T, error) {
	var result T

	body, err := json.Marshal(payload)
	if err != nil {
		return result, err
	}

	resp, err := http.Post(baseURL+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, err
	}
	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return result, err
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return result, err
	}
	return result, nil
}
