package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sandeepkv93/taskwall/internal/model"
)

const AlertTitle = "Task due"

type Alert struct {
	TaskID   int64
	Title    string
	Body     string
	Category string
	Deadline time.Time
	FiredAt  time.Time
}

func NewAlert(t model.Task, now time.Time) Alert {
	return Alert{
		TaskID:   t.ID,
		Title:    AlertTitle,
		Body:     fmt.Sprintf("%s - %s", t.Text, FormatDeadline(t.Deadline)),
		Category: t.Category,
		Deadline: t.Deadline,
		FiredAt:  now,
	}
}

// FormatDeadline renders a deadline in local time the way the board shows it.
func FormatDeadline(d time.Time) string {
	return d.Local().Format("Mon Jan 2 2006 3:04 PM")
}

// Notifier is the platform alert surface. Permitted is queried on every scheduler tick.
type Notifier interface {
	Permitted() bool
	Send(Alert) error
}

type NoopNotifier struct{}

func (NoopNotifier) Permitted() bool  { return false }
func (NoopNotifier) Send(Alert) error { return nil }

// InAppNotifier grants permission but delivers nothing itself; alerts reach the user
// through the scheduler's event channel.
type InAppNotifier struct{}

func (InAppNotifier) Permitted() bool  { return true }
func (InAppNotifier) Send(Alert) error { return nil }

type DesktopNotifier struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(name string, args ...string) error
}

func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (d *DesktopNotifier) binary() string {
	switch d.goos {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

// Permitted reports whether the platform notification helper is installed.
func (d *DesktopNotifier) Permitted() bool {
	bin := d.binary()
	if bin == "" {
		return false
	}
	_, err := d.lookPath(bin)
	return err == nil
}

func (d *DesktopNotifier) Send(a Alert) error {
	switch d.goos {
	case "linux":
		return d.run("notify-send", "--expire-time=5000", a.Title, a.Body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(a.Body), escapeAppleScript(a.Title))
		return d.run("osascript", "-e", script)
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// ByName resolves the notifier configured by name: desktop, inapp or none.
func ByName(name string) (Notifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "desktop":
		return NewDesktopNotifier(), nil
	case "inapp":
		return InAppNotifier{}, nil
	case "none":
		return NoopNotifier{}, nil
	default:
		return nil, fmt.Errorf("notify: unknown notifier %q", name)
	}
}
