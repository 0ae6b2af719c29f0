package headless

import (
	"log/slog"

	"github.com/coreos/go-systemd/v22/daemon"
)

// notifier reports service state to systemd when the process runs as a
// notify-type unit. Outside systemd every call is a no-op.
type notifier struct {
	notify func(unsetEnvironment bool, state string) (bool, error)
	logger func() *slog.Logger
}

func (n notifier) send(state string) {
	sent, err := n.notify(false, state)
	if err != nil {
		n.logger().Warn("systemd notify failed", "state", state, "err", err)
		return
	}
	if sent {
		n.logger().Debug("systemd notified", "state", state)
	}
}

func (n notifier) ready()    { n.send(daemon.SdNotifyReady) }
func (n notifier) stopping() { n.send(daemon.SdNotifyStopping) }
