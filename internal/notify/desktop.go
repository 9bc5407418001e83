package notify

import (
	"context"
	"os"
	"runtime"

	"github.com/gen2brain/beeep"
)

// Desktop delivers notifications through the OS notification service.
type Desktop struct {
	enabled bool
	icon    any

	goos   string
	getenv func(string) string
	notify func(title, message string, icon any) error
	alert  func(title, message string, icon any) error
}

// NewDesktop returns a Desktop deliverer. When enabled is false every
// permission request is denied.
func NewDesktop(appName string, enabled bool) *Desktop {
	beeep.AppName = appName
	return &Desktop{
		enabled: enabled,
		icon:    "",
		goos:    runtime.GOOS,
		getenv:  os.Getenv,
		notify:  beeep.Notify,
		alert:   beeep.Alert,
	}
}

// RequestPermission reports whether notifications can be shown: they must
// be enabled in the config and, on Linux and the BSDs, a desktop session
// must be reachable.
func (d *Desktop) RequestPermission(ctx context.Context) (bool, error) {
	if !d.enabled {
		return false, nil
	}
	switch d.goos {
	case "darwin", "windows":
		return true, nil
	case "linux", "freebsd", "netbsd", "openbsd", "dragonfly":
		if d.getenv("DBUS_SESSION_BUS_ADDRESS") != "" {
			return true, nil
		}
		return d.getenv("DISPLAY") != "" || d.getenv("WAYLAND_DISPLAY") != "", nil
	default:
		return false, beeep.ErrUnsupported
	}
}

// Deliver shows n now. Important notifications are raised as alerts.
func (d *Desktop) Deliver(n Notification) error {
	if n.Important {
		return d.alert(n.Title, n.Body, d.icon)
	}
	return d.notify(n.Title, n.Body, d.icon)
}
