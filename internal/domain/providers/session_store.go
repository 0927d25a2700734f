package providers

import (
	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

// SessionStore persists the session user snapshot between runs, standing in
// for the browser's localStorage. Load returns (nil, nil) when no snapshot
// exists.
type SessionStore interface {
	Load() (*entities.User, error)
	Save(user *entities.User) error
	Clear() error
}
