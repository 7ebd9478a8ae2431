package memory

import (
	"ikigai-interview-be/internal/entity"
	"ikigai-interview-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.ISessionRepository = &SessionRepository{}

func NewSessionRepository() *SessionRepository {
	// Sessions live for the process lifetime: no expiration, no janitor.
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *entity.InterviewSession) {
	r.cache.Set(session.ID, session, cache.NoExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*entity.InterviewSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*entity.InterviewSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) All() []*entity.InterviewSession {
	items := r.cache.Items()
	sessions := make([]*entity.InterviewSession, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(*entity.InterviewSession))
	}
	return sessions
}
