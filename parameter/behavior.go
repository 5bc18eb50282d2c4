// Package parameter centralizes tuning constants for the behavior core
package parameter

const (
	// TransitionDepthLimit bounds transition-within-event-within-transition
	// chains before the recursion guard aborts the pending transition
	TransitionDepthLimit = 3

	// FailureLogSize is the maximum retained ability failure records.
	// Oldest records are evicted first
	FailureLogSize = 32

	// NotificationQueueSize is the capacity of the synchronous notification
	// queue drained once per tick. Oldest notifications are dropped when full
	NotificationQueueSize = 256

	// SinkSendBuffer is the outbound buffer of the websocket telemetry sink.
	// Notifications are dropped, not blocked on, when the buffer is full
	SinkSendBuffer = 128
)
