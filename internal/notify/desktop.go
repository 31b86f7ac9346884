package notify

import (
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"media-dupes/internal/utils/logging"
)

// DesktopNotifier raises OS notifications through the platform's notification command.
type DesktopNotifier struct {
	Nop
	// run executes the notification command, replaced in tests.
	run func(name string, args ...string) error
	wg  sync.WaitGroup
}

// NewDesktopNotifier returns a desktop sink using notify-send or osascript.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Desktop implements Sink. The command runs in the background, see Wait.
func (d *DesktopNotifier) Desktop(title, body string) {
	name, args, ok := desktopCommand(runtime.GOOS, title, body)
	if !ok {
		logging.D(1, "No desktop notifier for %s, skipping notification %q", runtime.GOOS, title)
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.run(name, args...); err != nil {
			logging.D(1, "Desktop notification via %s failed: %v", name, err)
		}
	}()
}

// Wait blocks until every started notification command has exited.
func (d *DesktopNotifier) Wait() {
	d.wg.Wait()
}

// desktopCommand returns the command raising a notification on goos.
func desktopCommand(goos, title, body string) (name string, args []string, ok bool) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", []string{"--app-name=media-dupes", title, body}, true
	case "darwin":
		script := "display notification " + strconv.Quote(body) + " with title " + strconv.Quote(title)
		return "osascript", []string{"-e", script}, true
	default:
		return "", nil, false
	}
}
