// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser opens files and URLs in the user's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openCommand returns the platform launcher and its leading arguments.
// Split out for tests.
var openCommand = func(target string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// Open launches the default browser on the given file path or URL. The
// launcher is started detached; Open does not wait for the browser to exit.
func Open(target string) error {
	name, args := openCommand(target)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	// Reap the launcher so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
