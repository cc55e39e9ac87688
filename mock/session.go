package mock

import (
	"context"

	"github.com/fwojciec/engram"
)

// Compile-time interface verification.
var (
	_ engram.SessionService = (*SessionService)(nil)
	_ engram.SessionWriter  = (*SessionWriter)(nil)
)

// SessionService is a mock implementation of engram.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context, session *engram.Session) error
	FindSessionByIDFn func(ctx context.Context, id string) (*engram.Session, error)
	FindSessionsFn    func(ctx context.Context, filter engram.SessionFilter) ([]*engram.Session, error)
	DeleteSessionFn   func(ctx context.Context, id string) error
}

func (s *SessionService) CreateSession(ctx context.Context, session *engram.Session) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*engram.Session, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *SessionService) FindSessions(ctx context.Context, filter engram.SessionFilter) ([]*engram.Session, error) {
	return s.FindSessionsFn(ctx, filter)
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	return s.DeleteSessionFn(ctx, id)
}

// SessionWriter is a mock implementation of engram.SessionWriter.
type SessionWriter struct {
	WriteSessionFn func(ctx context.Context, session *engram.Session) (string, error)
}

func (w *SessionWriter) WriteSession(ctx context.Context, session *engram.Session) (string, error) {
	return w.WriteSessionFn(ctx, session)
}
