// Package platform opens URLs in the system browser and writes to the
// system clipboard.
package platform

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// NoBrowserEnv suppresses browser launches when set (useful for tests).
const NoBrowserEnv = "HACKERTERM_NO_BROWSER"

// ErrNoClipboard is returned when no clipboard utility is available.
var ErrNoClipboard = errors.New("no clipboard command available")

// ValidateURL accepts absolute http and https URLs.
func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("story has no URL")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL host")
	}
	return trimmed, nil
}

// Browser opens URLs with the platform's default handler.
type Browser struct{}

// Open validates u and launches the browser without waiting for it.
func (Browser) Open(u string) error {
	valid, err := ValidateURL(u)
	if err != nil {
		return err
	}
	if os.Getenv(NoBrowserEnv) != "" {
		return nil
	}
	name, args := browserCommand(runtime.GOOS, valid)
	return exec.Command(name, args...).Start()
}

func browserCommand(goos, u string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{u}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", u}
	default:
		return "xdg-open", []string{u}
	}
}

// Clipboard writes text to the system clipboard.
type Clipboard struct{}

// Copy replaces the clipboard contents with text.
func (Clipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrNoClipboard
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
