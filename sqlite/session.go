package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/engram"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ engram.SessionService = (*SessionService)(nil)

// SessionService implements engram.SessionService using SQLite.
type SessionService struct {
	db *DB

	// Now returns the time used for sessions without a capture time.
	Now func() time.Time
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db, Now: time.Now}
}

// hashMessages computes xxHash of a transcript and returns a hex string.
// Roles and contents are separated so that moving text between adjacent
// messages changes the hash.
func hashMessages(messages []engram.Message) string {
	d := xxhash.New()
	for _, m := range messages {
		_, _ = d.WriteString(string(m.Role))
		_, _ = d.WriteString("\x1f")
		_, _ = d.WriteString(m.Content)
		_, _ = d.WriteString("\x1e")
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, d.Sum64())
	return hex.EncodeToString(b)
}

// CreateSession normalizes and stores a new session with its messages and
// indexes it for full-text search. The ID, key and content hash are assigned
// on the passed session. Returns ECONFLICT if the same transcript was
// already captured from the same URL.
func (s *SessionService) CreateSession(ctx context.Context, session *engram.Session) error {
	*session = *engram.NormalizeSession(session, s.Now())
	if err := session.Validate(); err != nil {
		return err
	}

	session.ID = uuid.New().String()
	session.Key = engram.SessionKey(session.CapturedAt)
	session.ContentHash = hashMessages(session.Messages)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if session.URL != "" {
		var existing string
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM sessions WHERE url = ? AND content_hash = ? LIMIT 1
		`, session.URL, session.ContentHash).Scan(&existing)
		if err == nil {
			return engram.Errorf(engram.ECONFLICT, "conversation already captured as session %s", existing)
		}
		if err != sql.ErrNoRows {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, key, version, platform, url, title, captured_at, message_count, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, session.ID, session.Key, session.Version, string(session.Platform), session.URL, session.Title,
		formatTime(session.CapturedAt), session.MessageCount, session.ContentHash); err != nil {
		return err
	}

	for i, m := range session.Messages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO messages (session_id, position, role, content, timestamp)
			VALUES (?, ?, ?, ?, ?)
		`, session.ID, i, string(m.Role), m.Content, m.Timestamp); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindSessionByID retrieves a session and its messages by ID.
func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*engram.Session, error) {
	session, err := scanSession(s.db.QueryRowContext(ctx, `
		SELECT id, key, version, platform, url, title, captured_at, message_count, content_hash
		FROM sessions
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, engram.Errorf(engram.ENOTFOUND, "session not found")
	}
	if err != nil {
		return nil, err
	}

	messages, err := s.findMessages(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	session.Messages = messages

	return session, nil
}

// FindSessions retrieves sessions matching the filter, most recent first.
// Messages are not loaded.
func (s *SessionService) FindSessions(ctx context.Context, filter engram.SessionFilter) ([]*engram.Session, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, key, version, platform, url, title, captured_at, message_count, content_hash FROM sessions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Platform != nil {
		query.WriteString(" AND platform = ?")
		args = append(args, string(*filter.Platform))
	}
	if filter.Title != nil {
		query.WriteString(" AND instr(lower(title), lower(?)) > 0")
		args = append(args, *filter.Title)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}
	if filter.Query != nil {
		if match := matchExpr(*filter.Query); match != "" {
			query.WriteString(` AND id IN (
				SELECT session_id FROM messages_fts WHERE messages_fts MATCH ?
				UNION
				SELECT session_id FROM sessions_fts WHERE sessions_fts MATCH ?
			)`)
			args = append(args, match, match)
		}
	}

	query.WriteString(" ORDER BY captured_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*engram.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// DeleteSession permanently removes a session and its search index entries.
// Its messages are removed by the foreign key cascade.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return engram.Errorf(engram.ENOTFOUND, "session not found")
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages_fts WHERE session_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions_fts WHERE session_id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

// matchExpr turns free text into an FTS5 query matching rows that contain
// every word. Words are quoted so FTS5 operators in user input are taken
// literally. Returns "" for blank input.
func matchExpr(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
	}
	return strings.Join(words, " ")
}

// findMessages returns the messages of a session in transcript order.
func (s *SessionService) findMessages(ctx context.Context, sessionID string) ([]engram.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, timestamp
		FROM messages
		WHERE session_id = ?
		ORDER BY position ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []engram.Message{}
	for rows.Next() {
		var m engram.Message
		var role string
		if err := rows.Scan(&role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		m.Role = engram.Role(role)
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*engram.Session, error) {
	var session engram.Session
	var platform, capturedAt string

	if err := row.Scan(&session.ID, &session.Key, &session.Version, &platform, &session.URL,
		&session.Title, &capturedAt, &session.MessageCount, &session.ContentHash); err != nil {
		return nil, err
	}
	session.Platform = engram.Platform(platform)

	var err error
	session.CapturedAt, err = parseRFC3339(capturedAt, "captured_at")
	if err != nil {
		return nil, err
	}

	return &session, nil
}
