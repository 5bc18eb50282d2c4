package event

import "log/slog"

// SlogSink forwards notifications to a structured logger.
// Failures log at warn level, everything else at debug
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink writing to the given logger.
// A nil logger falls back to slog.Default()
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Notify(n Notification) {
	attrs := []any{"time", n.Time}
	switch n.Type {
	case TypeStateChanged:
		attrs = append(attrs, "previous", n.Previous, "current", n.Current)
	case TypeAbilityFailed:
		attrs = append(attrs, "ability", n.AbilityID, "reason", n.Reason)
		if len(n.Details) > 0 {
			attrs = append(attrs, "details", n.Details)
		}
		s.logger.Warn(n.Type.String(), attrs...)
		return
	default:
		attrs = append(attrs, "ability", n.AbilityID)
	}
	s.logger.Debug(n.Type.String(), attrs...)
}
