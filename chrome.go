package sitefilter

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/tfkr-ae/sitefilter/domain"
)

var _ domain.Opener = (*ChromeOpener)(nil)

// ChromeOpener opens URLs by executing the locally installed Chrome or Chromium binary.
// A running browser receives the URL as a new tab; otherwise a new window is started.
type ChromeOpener struct {
	CustomPaths []ChromePathConfig // Extra locations checked after the well-known ones

	goos     string
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// NewChromeOpener returns an opener that also looks at the given custom paths.
func NewChromeOpener(customPaths []ChromePathConfig) *ChromeOpener {
	return &ChromeOpener{
		CustomPaths: customPaths,
		goos:        runtime.GOOS,
		lookPath:    exec.LookPath,
		start:       startDetached,
	}
}

// Open launches Chrome with target as its only argument.
// The browser process is not tied to ctx so it outlives the caller.
func (c *ChromeOpener) Open(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	chromePath := c.path()
	if chromePath == "" {
		return fmt.Errorf("chrome executable not found for %s", c.goos)
	}

	if err := c.start(chromePath, target); err != nil {
		return fmt.Errorf("starting chrome : %w", err)
	}
	return nil
}

func (c *ChromeOpener) path() string {
	for _, candidate := range chromeCandidates(c.goos, c.CustomPaths) {
		if _, err := c.lookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// chromeCandidates lists the Chrome locations to try on goos, well-known paths first.
func chromeCandidates(goos string, customPaths []ChromePathConfig) []string {
	var paths []string
	switch goos {
	case "darwin":
		paths = []string{
			`/Applications/Google Chrome.app/Contents/MacOS/Google Chrome`,
			`/Applications/Chromium.app/Contents/MacOS/Chromium`,
			`/usr/local/bin/chrome`,   // Alternative common symlink
			`/usr/local/bin/chromium`, // Alternative common symlink for Chromium
		}
	case "windows":
		paths = []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files\Chromium\Application\chrome.exe`,
		}
	case "linux":
		paths = []string{
			`/usr/bin/google-chrome`,
			`/usr/bin/chromium-browser`,
			`/usr/bin/chromium`,
			`/snap/bin/chromium`,
		}
	default:
		return nil
	}

	for _, custom := range customPaths {
		if custom.OS == goos {
			paths = append(paths, custom.Path)
		}
	}
	return paths
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
