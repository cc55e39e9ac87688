package engram

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// SessionFormatVersion is the version of the normalized session record.
const SessionFormatVersion = "0.1.0"

// Defaults applied by NormalizeSession to missing fields.
const (
	DefaultPlatform = "unknown"
	DefaultTitle    = "Untitled"
)

// TitleMaxLength is the number of characters of the first user message
// used as a session title.
const TitleMaxLength = 80

// SessionKeyPrefix prefixes the timestamp-derived storage key of a session.
const SessionKeyPrefix = "engram_session_"

// Session represents a captured conversation.
type Session struct {
	ID           string    `json:"id"`
	Key          string    `json:"key"`
	Version      string    `json:"version"`
	Platform     Platform  `json:"platform"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	CapturedAt   time.Time `json:"capturedAt"`
	Messages     []Message `json:"messages"`
	MessageCount int       `json:"messageCount"`
	ContentHash  string    `json:"contentHash,omitempty"`
}

// Validate returns an error if the session contains invalid fields.
func (s *Session) Validate() error {
	if len(s.Messages) == 0 {
		return Errorf(EINVALID, "session has no messages")
	}
	for i, m := range s.Messages {
		if strings.TrimSpace(m.Content) == "" {
			return Errorf(EINVALID, "message %d has no content", i)
		}
		if m.Role == "" {
			return Errorf(EINVALID, "message %d has no role", i)
		}
	}
	return nil
}

// SessionKey returns the storage key for a session captured at t.
func SessionKey(t time.Time) string {
	return SessionKeyPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// AssembleSession wraps an extracted transcript with page metadata.
// The title is the beginning of the first user message, falling back to the
// document title. The document may be nil.
func AssembleSession(messages []Message, platform Platform, doc Document, now time.Time) *Session {
	var url, title string
	if doc != nil {
		url = doc.URL()
		title = doc.Title()
	}
	for _, m := range messages {
		if m.Role == RoleUser {
			title = truncateRunes(m.Content, TitleMaxLength)
			break
		}
	}
	return &Session{
		Platform:   platform,
		URL:        url,
		Title:      title,
		CapturedAt: now,
		Messages:   messages,
	}
}

// NormalizeSession returns a copy of raw in canonical form. Missing platform
// and title get defaults, a zero capture time becomes now, and MessageCount
// is recomputed from the messages regardless of the stored value.
func NormalizeSession(raw *Session, now time.Time) *Session {
	if raw == nil {
		raw = &Session{}
	}

	s := &Session{
		ID:          raw.ID,
		Key:         raw.Key,
		Version:     SessionFormatVersion,
		Platform:    raw.Platform,
		URL:         raw.URL,
		Title:       raw.Title,
		CapturedAt:  raw.CapturedAt,
		ContentHash: raw.ContentHash,
		Messages:    make([]Message, 0, len(raw.Messages)),
	}
	if s.Platform == PlatformUnknown {
		s.Platform = DefaultPlatform
	}
	if s.Title == "" {
		s.Title = DefaultTitle
	}
	if s.CapturedAt.IsZero() {
		s.CapturedAt = now
	}
	for _, m := range raw.Messages {
		s.Messages = append(s.Messages, Message{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	s.MessageCount = len(s.Messages)
	return s
}

// truncateRunes returns the first n characters of s.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// SessionService represents a service for managing captured sessions.
type SessionService interface {
	// CreateSession normalizes and stores a new session, assigning its ID,
	// key and content hash.
	CreateSession(ctx context.Context, session *Session) error

	// FindSessionByID retrieves a session with its messages.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*Session, error)

	// FindSessions retrieves sessions matching the filter, most recently
	// captured first. Messages are not loaded; MessageCount is set.
	FindSessions(ctx context.Context, filter SessionFilter) ([]*Session, error)

	// DeleteSession permanently removes a session and its messages.
	// Returns ENOTFOUND if the session does not exist.
	DeleteSession(ctx context.Context, id string) error
}

// SessionFilter represents a filter for FindSessions.
type SessionFilter struct {
	ID          *string   `json:"id"`
	Platform    *Platform `json:"platform"`
	Title       *string   `json:"title"` // substring match
	ContentHash *string   `json:"contentHash"`
	Query       *string   `json:"query"` // full-text match on title or message content

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SessionWriter exports sessions outside the database.
type SessionWriter interface {
	// WriteSession writes the session and returns the path written.
	WriteSession(ctx context.Context, session *Session) (string, error)
}
