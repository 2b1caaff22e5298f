// Package clipboard reads extracted task data back from the system
// clipboard. Lux instructions that end with "copy the extracted data to
// clipboard" leave their payload here; Reader retrieves it and ReadJSON
// decodes it.
package clipboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// DefaultTimeout bounds each clipboard tool attempt.
const DefaultTimeout = 3 * time.Second

// ErrNoClipboardTool is returned when no clipboard tool is available.
var ErrNoClipboardTool = errors.New("no clipboard tool available")

// Reader retrieves the current clipboard text. Implementations other than
// SystemReader exist for tests.
type Reader interface {
	Read() (string, error)
}

// tool is a clipboard command with its arguments.
type tool struct {
	name     string
	args     []string
	platform string // "darwin", "linux", "windows", or "" for any
}

// pasteTools lists clipboard readers in priority order.
var pasteTools = []tool{
	{name: "pbpaste", platform: "darwin"},
	{name: "xclip", args: []string{"-selection", "clipboard", "-o"}, platform: "linux"},
	{name: "wl-paste", platform: "linux"},
	{name: "powershell", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}, platform: "windows"},
}

// SystemReader reads the real system clipboard, trying each applicable tool
// until one succeeds.
type SystemReader struct {
	// Timeout per tool attempt; DefaultTimeout when zero.
	Timeout time.Duration
}

// Read implements Reader.
func (r SystemReader) Read() (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tools := applicableTools(runtime.GOOS)
	if len(tools) == 0 {
		return "", ErrNoClipboardTool
	}
	for _, t := range tools {
		if content, ok := tryPaste(t, timeout); ok {
			return content, nil
		}
	}
	return "", ErrNoClipboardTool
}

// StaticReader returns fixed content; used as a test double.
type StaticReader struct {
	Content string
	Err     error
}

// Read implements Reader.
func (r StaticReader) Read() (string, error) { return r.Content, r.Err }

// ReadJSON reads the clipboard and decodes it into v. The payload may be
// wrapped in a markdown code fence; the fence is stripped before decoding.
func ReadJSON(r Reader, v any) error {
	content, err := r.Read()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(StripFence(content)), v)
}

// StripFence removes a surrounding ```json … ``` fence, if present.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func applicableTools(goos string) []tool {
	var out []tool
	for _, t := range pasteTools {
		if t.platform == "" || t.platform == goos {
			out = append(out, t)
		}
	}
	return out
}

func tryPaste(t tool, timeout time.Duration) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.name, t.args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil || ctx.Err() != nil {
		return "", false
	}
	return strings.TrimSuffix(stdout.String(), "\n"), true
}
