package station

import "log"

// Notifier surfaces operator-facing notifications. Every failure path
// produces one; nothing is swallowed.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to a standard logger.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier constructs a log-backed notifier.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(message string) {
	if n.logger != nil {
		n.logger.Printf("ok: %s", message)
	}
}

func (n *LogNotifier) Error(message string) {
	if n.logger != nil {
		n.logger.Printf("error: %s", message)
	}
}
