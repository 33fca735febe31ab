package cart

import (
	"sync"

	"go.uber.org/zap"
)

// NotificationKind classifies the outcome of a cart mutation.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is the user-facing outcome of a single mutation attempt.
type Notification struct {
	Kind   NotificationKind
	Reason string
}

// Sink receives exactly one notification per mutating cart operation.
// It observes outcomes and plays no part in invariant enforcement.
type Sink interface {
	Notify(n Notification)
}

// LogSink writes notifications to the service log.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(n Notification) {
	if n.Kind == NotifyError {
		s.logger.Warn("cart notification", zap.String("kind", string(n.Kind)), zap.String("reason", n.Reason))
		return
	}
	s.logger.Info("cart notification", zap.String("kind", string(n.Kind)), zap.String("reason", n.Reason))
}

// CollectorSink records notifications in order, for tests and for surfacing
// the last outcome to API responses.
type CollectorSink struct {
	mu            sync.Mutex
	notifications []Notification
}

func NewCollectorSink() *CollectorSink {
	return &CollectorSink{}
}

func (s *CollectorSink) Notify(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

// All returns a copy of every notification seen so far.
func (s *CollectorSink) All() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Last returns the most recent notification, if any.
func (s *CollectorSink) Last() (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notifications) == 0 {
		return Notification{}, false
	}
	return s.notifications[len(s.notifications)-1], true
}

// MultiSink fans a notification out to several sinks.
type MultiSink []Sink

func (m MultiSink) Notify(n Notification) {
	for _, s := range m {
		s.Notify(n)
	}
}
