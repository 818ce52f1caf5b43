// Package session provides the in-process interview session store. Sessions
// are ephemeral: nothing outlives the server process.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/voxprep/interview-server/domain/entities"
	"github.com/voxprep/interview-server/domain/repositories"
)

// ErrNotFound is returned when a session ID is unknown.
var ErrNotFound = errors.New("session not found")

// MemoryRepository is a mutex-guarded in-memory SessionRepository.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entities.Session
}

// Ensure MemoryRepository implements the SessionRepository interface
var _ repositories.SessionRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates a new in-memory session repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]*entities.Session),
	}
}

// Create implements repositories.SessionRepository
func (r *MemoryRepository) Create(ctx context.Context, session *entities.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

// GetByID implements repositories.SessionRepository
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*entities.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Update implements repositories.SessionRepository
func (r *MemoryRepository) Update(ctx context.Context, session *entities.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return ErrNotFound
	}
	r.sessions[session.ID] = session
	return nil
}
