// Package alert carries terminal failures out of the core to whatever
// front end is running. The core never renders anything itself.
package alert

import "go.uber.org/zap"

// Notifier receives user-visible error reports.
type Notifier interface {
	NotifyError(title, message, detail string)
}

// LogNotifier writes notifications to the structured log. The CLI uses it
// directly; a GUI front end would supply its own implementation.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyError(title, message, detail string) {
	n.log.Error(title,
		zap.String("message", message),
		zap.String("detail", detail))
}
