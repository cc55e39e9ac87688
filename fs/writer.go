// Package fs provides file-based export of captured sessions.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/engram"
	"gopkg.in/yaml.v3"
)

// Format is an export file format.
type Format string

// Supported export formats.
const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".md"
}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", engram.Errorf(engram.EINVALID, "unknown export format: %s", s)
	}
}

// SessionPath returns the path of a session export relative to the export
// directory: <platform>/<key><ext>.
func SessionPath(session *engram.Session, format Format) string {
	platform := string(session.Platform)
	if platform == "" {
		platform = engram.DefaultPlatform
	}
	key := session.Key
	if key == "" {
		key = engram.SessionKey(session.CapturedAt)
	}
	return filepath.Join(platform, key+format.Ext())
}

// frontmatter is the YAML header of a Markdown export.
type frontmatter struct {
	Platform string    `yaml:"platform"`
	URL      string    `yaml:"url,omitempty"`
	Title    string    `yaml:"title"`
	Captured time.Time `yaml:"captured"`
	Messages int       `yaml:"messages"`
}

// FormatSession formats a session as Markdown with YAML frontmatter and
// one section per message.
func FormatSession(session *engram.Session) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Platform: string(session.Platform),
		URL:      session.URL,
		Title:    session.Title,
		Captured: session.CapturedAt.UTC().Truncate(time.Second),
		Messages: session.MessageCount,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")
	for _, m := range session.Messages {
		b.WriteString("\n## ")
		b.WriteString(roleHeading(m.Role))
		b.WriteString("\n\n")
		if m.Timestamp != "" {
			b.WriteString("_")
			b.WriteString(m.Timestamp)
			b.WriteString("_\n\n")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func roleHeading(role engram.Role) string {
	switch role {
	case engram.RoleUser:
		return "User"
	case engram.RoleAssistant:
		return "Assistant"
	default:
		return string(role)
	}
}

// Ensure Writer implements engram.SessionWriter at compile time.
var _ engram.SessionWriter = (*Writer)(nil)

// Writer writes sessions as files below a base directory.
type Writer struct {
	baseDir string
	format  Format
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string, format Format) *Writer {
	return &Writer{baseDir: baseDir, format: format}
}

// WriteSession writes a session to disk and returns the full path written.
func (w *Writer) WriteSession(ctx context.Context, session *engram.Session) (string, error) {
	if err := session.Validate(); err != nil {
		return "", err
	}

	var content []byte
	switch w.format {
	case FormatJSON:
		b, err := json.MarshalIndent(session, "", "  ")
		if err != nil {
			return "", err
		}
		content = append(b, '\n')
	default:
		s, err := FormatSession(session)
		if err != nil {
			return "", err
		}
		content = []byte(s)
	}

	fullPath := filepath.Join(w.baseDir, SessionPath(session, w.format))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
