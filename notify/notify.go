// Package notify tells the desktop user about a verdict.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	dbusnotify "github.com/esiqveland/notify"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/ftahirops/rebootcheck/checks"
	"github.com/ftahirops/rebootcheck/config"
)

const appName = "rebootcheck"

var errNoSessionBus = errors.New("no session bus")

// For testing.
var (
	sendDesktop = sendDBus
	execCommand = exec.CommandContext
)

// Notifier sends desktop notifications and runs the optional hook command.
type Notifier struct {
	cfg    config.Notify
	logger *zap.Logger
}

// New creates a notifier.
func New(cfg config.Notify, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{cfg: cfg, logger: logger}
}

// Enabled returns true if any destination is configured.
func (n *Notifier) Enabled() bool {
	return n.cfg.Enabled || n.cfg.Command != ""
}

// Send notifies about result. Nothing is sent for checks.Nothing. A missing
// session bus is logged, not returned.
func (n *Notifier) Send(ctx context.Context, result checks.Result) error {
	if result == checks.Nothing || !n.Enabled() {
		return nil
	}

	if n.cfg.Enabled {
		if err := n.desktop(ctx, result); err != nil {
			return err
		}
	}
	if n.cfg.Command != "" {
		if err := n.hook(ctx, result); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) desktop(ctx context.Context, result checks.Result) error {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()
	id, err := sendDesktop(ctx, desktopNotification(result, n.cfg))
	if errors.Is(err, errNoSessionBus) {
		n.logger.Warn("desktop notification skipped", zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	n.logger.Debug("desktop notification sent", zap.Stringer("result", result), zap.Uint32("id", id))
	return nil
}

func (n *Notifier) hook(ctx context.Context, result checks.Result) error {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()
	cmd := execCommand(ctx, "sh", "-c", n.cfg.Command)
	cmd.Env = append(os.Environ(),
		"REBOOTCHECK_RESULT="+result.String(),
		"REBOOTCHECK_SUMMARY="+result.Summary(),
		"REBOOTCHECK_BODY="+result.Body(),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notify command: %w: %s", err, out)
	}
	return nil
}

func desktopNotification(result checks.Result, cfg config.Notify) dbusnotify.Notification {
	urgency := dbusnotify.UrgencyNormal
	if result >= checks.Reboot {
		urgency = dbusnotify.UrgencyCritical
	}
	n := dbusnotify.Notification{
		AppName:       appName,
		Summary:       result.Summary(),
		Body:          result.Body(),
		Hints:         map[string]dbus.Variant{},
		ExpireTimeout: cfg.Timeout,
	}
	n.SetUrgency(urgency)
	return n
}

// sendDBus delivers n over a private session bus connection.
func sendDBus(ctx context.Context, n dbusnotify.Notification) (uint32, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errNoSessionBus, err)
	}
	defer conn.Close()
	return dbusnotify.SendNotification(conn, n)
}
