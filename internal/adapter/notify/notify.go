// Package notify provides server-side stand-ins for the storefront's toast
// and routing collaborators.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// LogNotifier writes toast messages to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(message string) {
	n.logger.Info("toast", zap.String("message", message))
}

// LogNavigator records the current path and logs every transition.
type LogNavigator struct {
	logger *zap.Logger

	mu      sync.Mutex
	current string
}

func NewLogNavigator(logger *zap.Logger) *LogNavigator {
	return &LogNavigator{logger: logger}
}

func (n *LogNavigator) NavigateTo(path string) {
	n.mu.Lock()
	n.current = path
	n.mu.Unlock()
	n.logger.Info("navigate", zap.String("path", path))
}

// Current returns the most recent navigation target.
func (n *LogNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
