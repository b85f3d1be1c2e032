package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"orienta-backend/internal/models"
)

// MemoryStore keeps everything in process memory. It backs the degraded mode
// entered when Postgres is unreachable at startup, and the tests. Data does
// not survive a restart.
type MemoryStore struct {
	mu          sync.Mutex
	profiles    map[string]models.StudentProfile
	histories   map[string][]models.ChatMessage
	submissions []models.QuestionnaireSubmission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:  make(map[string]models.StudentProfile),
		histories: make(map[string][]models.ChatMessage),
	}
}

func (s *MemoryStore) GetProfile(ctx context.Context, sessionKey string) (*models.StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[sessionKey]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyProfile(p)
	return &out, nil
}

func (s *MemoryStore) UpsertProfile(ctx context.Context, profile *models.StudentProfile) (*models.StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyProfile(*profile)
	s.profiles[profile.SessionKey] = stored

	out := copyProfile(stored)
	return &out, nil
}

func (s *MemoryStore) ListMessages(ctx context.Context, sessionKey string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.histories[sessionKey]
	out := make([]models.ChatMessage, len(history))
	copy(out, history)
	return out, nil
}

func (s *MemoryStore) AppendTurn(ctx context.Context, sessionKey string, userMsg, botMsg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Single critical section keeps the pair contiguous for this turn even
	// when turns for the same session interleave.
	s.histories[sessionKey] = append(s.histories[sessionKey], userMsg, botMsg)
	return nil
}

func (s *MemoryStore) SaveSubmission(ctx context.Context, sub *models.QuestionnaireSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = uuid.New()
	sub.FechaEnvio = time.Now().UTC()
	s.submissions = append(s.submissions, *sub)
	return nil
}

func (s *MemoryStore) SubmissionStats(ctx context.Context) (int, *time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.submissions) == 0 {
		return 0, nil, nil
	}
	last := s.submissions[len(s.submissions)-1].FechaEnvio
	return len(s.submissions), &last, nil
}

// copyProfile deep-copies the slices and map so callers never share state
// with the store.
func copyProfile(p models.StudentProfile) models.StudentProfile {
	out := p
	out.Interests = append([]string{}, p.Interests...)
	out.Skills = append([]string{}, p.Skills...)
	out.Preferences = make(map[string]any, len(p.Preferences))
	for k, v := range p.Preferences {
		out.Preferences[k] = v
	}
	return out
}
