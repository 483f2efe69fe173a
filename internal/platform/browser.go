// Package platform holds the open-external capability: one platform
// detection call at the edge, no conditional probing inside app logic.
package platform

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenExternal hands a URL to the system browser.
func OpenExternal(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
