package contract

import (
	"ikigai-interview-be/internal/entity"
)

// ISessionRepository abstracts the session key-value store so the
// in-memory implementation can be swapped for a durable backing store
// without changing callers.
type ISessionRepository interface {
	Save(session *entity.InterviewSession)
	Get(sessionID string) (*entity.InterviewSession, bool)
	Delete(sessionID string)
	All() []*entity.InterviewSession
}
