package repositories

import (
	"context"

	"github.com/voxprep/interview-server/domain/entities"
)

// SessionRepository stores interview sessions for their in-process lifetime.
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	GetByID(ctx context.Context, id string) (*entities.Session, error)
	Update(ctx context.Context, session *entities.Session) error
}
