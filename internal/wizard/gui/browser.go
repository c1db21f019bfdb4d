package gui

import (
	"log/slog"
	"os/exec"
	"runtime"
)

// openBrowser points the default browser at url. Failures are logged
// and otherwise ignored; the printed URL is always enough.
func openBrowser(url string, logger *slog.Logger) {
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
		logger.Debug("could not open browser", "error", err)
		return
	}
	go func() { _ = cmd.Wait() }()
}
