package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/engram/cmd/engram"
	"github.com/fwojciec/engram/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedCommands = []string{"capture", "list", "search", "show", "export", "delete", "platforms"}

const claudePage = `<!DOCTYPE html>
<html>
<head><title>Claude</title></head>
<body>
<main>
  <div class="font-user-message" style="display: flex; justify-content: flex-end">Can you explain Go channels briefly?</div>
  <div class="font-claude-message">Channels are typed conduits that goroutines use to communicate.</div>
</main>
</body>
</html>`

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")

	_, err = os.Stat(m.DBPath)
	assert.True(t, os.IsNotExist(err), "help should not create the database")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_Platforms(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"platforms"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "chatgpt "))
	assert.Contains(t, stdout.String(), "[data-message-author-role]")
	assert.Contains(t, stdout.String(), "qwen")
}

// TestMain_Run_EndToEnd captures a saved page into a fresh database and
// drives every session command against it.
func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "chat.html")
	require.NoError(t, os.WriteFile(htmlPath, []byte(claudePage), 0644))
	dbPath := filepath.Join(dir, "engram.db")

	run := func(args ...string) (string, string, error) {
		m := main.NewMain()
		m.DBPath = dbPath
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), args, stdout, stderr)
		return stdout.String(), stderr.String(), err
	}

	out, errOut, err := run("capture", "--html", htmlPath, "https://claude.ai/chat/123")
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "claude · 2 messages  Can you explain Go channels briefly?")

	id := strings.TrimSpace(strings.TrimPrefix(strings.SplitN(out, "\n", 2)[0], "Saved session "))
	require.NotEmpty(t, id)

	_, errOut, err = run("capture", "--html", htmlPath, "https://claude.ai/chat/123")
	require.Error(t, err)
	assert.Contains(t, errOut, "conversation already captured as session "+id)

	out, _, err = run("list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "claude · 2 messages")

	out, _, err = run("search", "typed", "conduits")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, _, err = run("search", "mutex")
	require.NoError(t, err)
	assert.Contains(t, out, `No sessions match "mutex".`)

	out, _, err = run("show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "## User\n\nCan you explain Go channels briefly?\n")
	assert.Contains(t, out, "## Assistant\n\nChannels are typed conduits that goroutines use to communicate.\n")

	exportDir := filepath.Join(dir, "export")
	out, errOut, err = run("export", "--dir", exportDir, "--format", "json")
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "Exported 1 sessions")
	matches, err := filepath.Glob(filepath.Join(exportDir, "claude", "engram_session_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	out, _, err = run("delete", "--force", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted session")

	out, _, err = run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found")
}

func TestMain_Run_CaptureUsesInjectedFetcher(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return claudePage, nil
		},
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"capture", "https://claude.ai/chat/123"}, stdout, stderr)

	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "Saved session")
	assert.Contains(t, stdout.String(), "claude · 2 messages")
}
